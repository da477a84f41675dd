package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/mitchellh/go-homedir"

	"github.com/ironsheep/image-fill-mcp/internal/config"
	"github.com/ironsheep/image-fill-mcp/internal/fill"
	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

// runApply runs one fill job on one image file.
func runApply(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(stdout)
	in := fs.String("in", "", "source image")
	out := fs.String("out", "", "destination image; the extension picks the format")
	jobPath := fs.String("job", "", "job file (.toml, .yaml, .yml or .json)")
	seed := fs.Int64("seed", 0, "seed for cloud shapes (0 = random)")
	tolerance := fs.Int("tolerance", fill.DefaultTolerance, "default color tolerance")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" || *jobPath == "" {
		return errors.New("-in, -out and -job are required")
	}

	job, err := config.LoadJob(expand(*jobPath))
	if err != nil {
		return err
	}

	cache := imaging.NewImageCache()
	src, err := cache.Load(expand(*in))
	if err != nil {
		return err
	}

	opts := []fill.Option{fill.WithCache(cache), fill.WithTolerance(*tolerance)}
	if *seed != 0 {
		opts = append(opts, fill.WithSeed(*seed))
	}
	res, err := fill.NewEngine(opts...).Process(src, job)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Printf("warning: %s", w)
	}

	dst := expand(*out)
	if err := imaging.Save(res.Image, dst); err != nil {
		return err
	}
	b := res.Image.Bounds()
	fmt.Fprintf(stdout, "wrote %s (%dx%d, %d warnings)\n", dst, b.Dx(), b.Dy(), len(res.Warnings))
	return nil
}

func expand(path string) string {
	p, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return p
}
