package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-mdpad/cmd/mdpad/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runImport(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("mdpad import: %v", err)
	}
}

func runImport(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("mdpad-import", flag.ExitOnError)
	opts := bootstrap.BindFlags(fs)
	file := fs.String("file", "", "Markdown or text file to load into the document slot")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := strings.TrimSpace(*file)
	if path == "" && fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if path == "" {
		return fmt.Errorf("a file path is required")
	}

	module, err := moduleBuilder(ctx, *opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	if err := module.Module.ImportFile(ctx, path); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	key := module.Module.Container().Config.Storage.Key
	fmt.Fprintf(out, "imported %s into slot %q\n", path, key)
	return nil
}
