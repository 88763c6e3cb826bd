// Command describe prints descriptive statistics for data/data.csv next to
// the executable. It always exits with status zero.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"csvdescribe/internal/app"
	"csvdescribe/internal/config"
)

func main() {
	run(context.Background(), os.Stdout)
}

func run(ctx context.Context, stdout io.Writer) {
	application, err := app.NewApplication()
	if err != nil {
		fmt.Fprintf(stdout, app.UnexpectedErrFormat+"\n", err)
		return
	}

	application.Run(ctx, stdout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	application.Shutdown(shutdownCtx)
}
