package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	pkgAuth "github.com/angelmondragon/ooh-agent-backend/pkg/auth"
	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
)

// token mints a service JWT for a workflow client (n8n, the PDF renderer).
func main() {
	_ = godotenv.Load()

	client := flag.String("client", "n8n", "client name carried in the token")
	flag.Parse()

	if *client == "" {
		fmt.Fprintln(os.Stderr, "missing -client")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	token, err := pkgAuth.MintServiceToken(cfg.JWT, time.Now(), pkgAuth.ServiceTokenPayload{
		Client: *client,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to mint token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
