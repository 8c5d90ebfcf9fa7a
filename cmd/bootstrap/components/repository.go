package components

import (
	"blindbid/internal/infra/repository"
	"blindbid/internal/usecase/commands"
	"blindbid/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewAuctionRepository,
			fx.As(new(commands.AuctionRepository)),
			fx.As(new(queries.AuctionReadStore)),
		),
	),
)
