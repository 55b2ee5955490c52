package server

import (
	"Tribune/handler"
)

type Handlers struct {
	Feed  *handler.Feed
	Video *handler.Video
}
