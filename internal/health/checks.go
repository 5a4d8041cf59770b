package health

import (
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthMongo "github.com/hellofresh/health-go/v5/checks/mongo"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/shelfglow/inventory-backend/internal/config"
)

func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{

			Name:    "inventory-backend",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "mongodb",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: healthMongo.New(healthMongo.Config{
					DSN: cfg.Mongo.URI,
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.Cache.GetDSN(),
					},
				),
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
