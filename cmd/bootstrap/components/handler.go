package components

import (
	"blindbid/internal/handler"
	"blindbid/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuctionHandler,
	),
	fx.Invoke(handler.NewRouter),
)
