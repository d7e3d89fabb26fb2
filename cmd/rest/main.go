package main

import (
	"log"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/bootstrap"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/config"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 3. Initialize Server
	srv := server.New(cfg, container)

	// 4. Run Server
	log.Fatal(srv.Run())
}
