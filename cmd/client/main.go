package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrianliechti/narrator/pkg/client"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:5000", "server url")
	tokenFlag := flag.String("token", "", "server token")
	outputFlag := flag.String("output", "caption.mp3", "audio output path")
	captionFlag := flag.Bool("caption", false, "caption only, skip speech")

	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: client [flags] <image>")
		os.Exit(2)
	}

	ctx := context.Background()

	options := []client.RequestOption{}

	if *tokenFlag != "" {
		options = append(options, client.WithToken(*tokenFlag))
	}

	c := client.New(*urlFlag, options...)

	var err error

	if *captionFlag {
		err = caption(ctx, c, flag.Arg(0))
	} else {
		err = narrate(ctx, c, flag.Arg(0), *outputFlag)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func caption(ctx context.Context, c *client.Client, path string) error {
	f, err := os.Open(path)

	if err != nil {
		return err
	}

	defer f.Close()

	result, err := c.Captions.New(ctx, client.CaptionRequest{
		Name:   filepath.Base(path),
		Reader: f,
	})

	if err != nil {
		return err
	}

	fmt.Println(result.Caption)

	if result.Text != "" {
		fmt.Println("detected text:", result.Text)
	}

	return nil
}

func narrate(ctx context.Context, c *client.Client, path, output string) error {
	f, err := os.Open(path)

	if err != nil {
		return err
	}

	defer f.Close()

	result, err := c.Narrations.New(ctx, client.NarrationRequest{
		Name:   filepath.Base(path),
		Reader: f,
	})

	if err != nil {
		return err
	}

	fmt.Println(result.Caption)

	audio, err := c.Audio.Get(ctx, result.AudioURL)

	if err != nil {
		return err
	}

	if err := os.WriteFile(output, audio.Content, 0644); err != nil {
		return err
	}

	fmt.Println("audio saved to", output)

	return nil
}
