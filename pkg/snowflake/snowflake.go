package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// GenID 生成全局唯一ID，视频、投票、评论、推荐日志共用
func GenID() uint64 {
	return uint64(node.Generate().Int64())
}
