package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewVideoDAO,
	NewVoteDAO,
	NewCommentDAO,
	NewVideoViewDAO,
	NewVideoBookmarkDAO,
	NewCandidateDAO,
	NewFeedLogDAO,
)
