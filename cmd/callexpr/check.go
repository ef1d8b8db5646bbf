package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/xiam/callexpr"
	"github.com/xiam/callexpr/ast"
)

type checkResult struct {
	name  string
	src   []byte
	nodes []ast.Node
	err   error
}

// runCheck parses the given files using up to jobs goroutines. It prints a
// summary line for every file that parses and a diagnostic for every file that
// doesn't, in the order the files were given. The returned error holds one
// entry per failed file. Files not yet started when ctx is done fail with the
// context's error.
func runCheck(ctx context.Context, e *env, files []string, jobs int) *multierror.Error {
	results := make([]checkResult, len(files))

	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i := range files {
		i := i
		g.Go(func() error {
			res := &results[i]
			res.name = files[i]
			if err := ctx.Err(); err != nil {
				res.err = err
				return nil
			}

			src, err := os.ReadFile(files[i])
			if err != nil {
				res.err = errors.Wrapf(err, "reading %s", files[i])
				return nil
			}
			res.src = src

			res.nodes, res.err = callexpr.Parse(src, callexpr.WithLogger(e.log))
			e.log.Debugf("checked %s", files[i])
			return nil
		})
	}

	// Failures are kept per file, the group itself never fails.
	_ = g.Wait()

	var merr *multierror.Error

	for _, res := range results {
		if res.err != nil {
			report(e.stderr, res.name, res.src, res.err)
			merr = multierror.Append(merr, errors.Wrap(res.err, res.name))
			continue
		}
		fmt.Fprintf(e.stdout, "%s: ok, %d calls, %d numbers, %d strings\n",
			res.name,
			ast.Count(res.nodes, ast.NodeTypeCallExpression),
			ast.Count(res.nodes, ast.NodeTypeNumberLiteral),
			ast.Count(res.nodes, ast.NodeTypeStringLiteral),
		)
	}

	e.log.Infof("checked %d files", len(files))
	return merr
}
