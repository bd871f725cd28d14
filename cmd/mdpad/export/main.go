package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-mdpad/cmd/mdpad/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runExport(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("mdpad export: %v", err)
	}
}

func runExport(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("mdpad-export", flag.ExitOnError)
	opts := bootstrap.BindFlags(fs)
	dir := fs.String("dir", "", "Directory to write to (defaults to the configured export dir)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(ctx, *opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	artifact, err := module.Module.ExportDocument(ctx, *dir)
	if err != nil {
		return fmt.Errorf("export document: %w", err)
	}
	fmt.Fprintln(out, artifact.Path)
	return nil
}
