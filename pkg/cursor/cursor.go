// Package cursor 翻页游标的编解码。
// 游标对客户端不透明，内容为 (最后一条视频ID, 排序键)，附带与盐绑定的校验值
package cursor

import (
	"errors"
	"hash/fnv"
	"math"
	"strconv"
	"time"

	"github.com/speps/go-hashids/v2"
)

var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor 翻页位置，Key 一般是纳秒时间戳
type Cursor struct {
	VideoID uint64
	Key     int64
}

// Time 把 Key 当作纳秒时间戳解释
func (c Cursor) Time() time.Time {
	return time.Unix(0, c.Key).UTC()
}

func FromTime(videoID uint64, t time.Time) Cursor {
	return Cursor{VideoID: videoID, Key: t.UnixNano()}
}

type Codec struct {
	salt string
	h    *hashids.HashID
}

func NewCodec(salt string) (*Codec, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 16
	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}
	return &Codec{salt: salt, h: h}, nil
}

func (c *Codec) Encode(cur Cursor) (string, error) {
	if cur.VideoID > math.MaxInt64 || cur.Key < 0 {
		return "", ErrInvalidCursor
	}
	id := int64(cur.VideoID)
	return c.h.EncodeInt64([]int64{id, cur.Key, c.check(id, cur.Key)})
}

// Decode 解析游标，格式错误或被篡改时返回 ErrInvalidCursor
func (c *Codec) Decode(token string) (cur Cursor, err error) {
	defer func() {
		if r := recover(); r != nil {
			cur, err = Cursor{}, ErrInvalidCursor
		}
	}()

	if token == "" {
		return Cursor{}, ErrInvalidCursor
	}
	nums, err := c.h.DecodeInt64WithError(token)
	if err != nil || len(nums) != 3 {
		return Cursor{}, ErrInvalidCursor
	}
	if nums[0] < 0 || nums[1] < 0 || nums[2] != c.check(nums[0], nums[1]) {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{VideoID: uint64(nums[0]), Key: nums[1]}, nil
}

func (c *Codec) check(id, key int64) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(c.salt))
	_, _ = h.Write([]byte(strconv.FormatInt(id, 10)))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(strconv.FormatInt(key, 10)))
	return int64(h.Sum32())
}
