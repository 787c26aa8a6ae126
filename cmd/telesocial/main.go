// Command telesocial is a thin harness over the SDK for poking the
// Telesocial API from a shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	telesocial "github.com/telesocial/telesocial-sdk-go"
	"github.com/telesocial/telesocial-sdk-go/config"
	"github.com/telesocial/telesocial-sdk-go/envelope"
)

const usage = `usage: telesocial [-config file] [-v] <command> [args]

commands:
  version
  register <networkid> [phone]
  status <networkid>
  registrants
  conference <leader-networkid>
  add <conferenceid> <networkid>
  conferences
  media-new
  media
  media-status <mediaid>
  blast <networkid> <mediaid>...
  grant <mediaid>
  upload <grantid> <file>
  download <url> <dest>
`

func main() {
	configPath := flag.String("config", "telesocial.toml", "settings file")
	verbose := flag.Bool("v", false, "log requests")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	settings, err := config.Resolve(*configPath)
	if err != nil {
		fatal(err)
	}

	opts := []telesocial.Option{telesocial.WithBaseURL(settings.BaseURL)}
	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fatal(err)
		}
		defer logger.Sync()
		opts = append(opts, telesocial.WithLogger(logger))
	}

	client, err := telesocial.NewClient(settings.AppKey, opts...)
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, client, args); err != nil {
		fatal(err)
	}
}

func run(ctx context.Context, client *telesocial.Client, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "version":
		v, err := client.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	case "register":
		need(rest, 1)
		phone := ""
		if len(rest) > 1 {
			phone = rest[1]
		}
		return show(client.RegisterNetworkID(ctx, rest[0], phone))
	case "status":
		need(rest, 1)
		return show(client.NetworkIDStatus(ctx, rest[0]))
	case "registrants":
		return show(client.ListNetworkIDs(ctx))
	case "conference":
		need(rest, 1)
		return show(client.CreateConference(ctx, rest[0]))
	case "add":
		need(rest, 2)
		return show(client.AddParticipant(ctx, rest[0], rest[1]))
	case "conferences":
		return show(client.ListConferences(ctx))
	case "media-new":
		return show(client.CreateMedia(ctx))
	case "media":
		return show(client.ListMedia(ctx))
	case "media-status":
		need(rest, 1)
		return show(client.MediaStatus(ctx, rest[0]))
	case "blast":
		need(rest, 2)
		return show(client.BlastMedia(ctx, rest[0], rest[1:]...))
	case "grant":
		need(rest, 1)
		return show(client.RequestUploadGrant(ctx, rest[0]))
	case "upload":
		need(rest, 2)
		return show(client.UploadMedia(ctx, rest[0], rest[1]))
	case "download":
		need(rest, 2)
		n, err := client.DownloadMedia(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		fmt.Printf("wrote %d bytes to %s\n", n, rest[1])
		return nil
	default:
		flag.Usage()
		os.Exit(2)
		return nil
	}
}

func show(env *envelope.Envelope, err error) error {
	if err != nil {
		return err
	}
	fmt.Printf("status: %d\n", env.Status())
	if uri := env.URI(); uri != "" {
		fmt.Printf("uri: %s\n", uri)
	}
	if msg := env.Message(); msg != "" {
		fmt.Printf("message: %s\n", msg)
	}
	return nil
}

func need(args []string, n int) {
	if len(args) < n {
		flag.Usage()
		os.Exit(2)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "telesocial:", err)
	os.Exit(1)
}
