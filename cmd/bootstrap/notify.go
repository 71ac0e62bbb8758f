package bootstrap

import (
	"context"

	"reservation-engine/internal/infra/db"
	"reservation-engine/internal/infra/notify"
	"reservation-engine/internal/infra/repository"
	"reservation-engine/internal/pkg/clock"
	"reservation-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		NewPublisher,
		NewDispatcher,
	),
	fx.Invoke(startDispatcher),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config) (notify.Publisher, error) {
	publisher, cleanup, err := notify.NewAMQPPublisher(cfg.AMQP)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return publisher, nil
}

func NewDispatcher(dbtx db.DBTX, publisher notify.Publisher, clk clock.Clock, cfg config.Config) *notify.Dispatcher {
	jobs := repository.NewNotificationRepository(dbtx)
	return notify.NewDispatcher(jobs, publisher, clk, cfg.Booking)
}

func startDispatcher(lc fx.Lifecycle, dispatcher *notify.Dispatcher) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				dispatcher.Run(ctx)
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}
