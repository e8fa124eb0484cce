package commands

import (
	"context"
	"io"
	"os"
)

type stdStreamsKey struct{}

type stdStreams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func getStdStreamsValue(ctx context.Context) stdStreams {
	v, ok := ctx.Value(stdStreamsKey{}).(stdStreams)
	if !ok {
		return stdStreams{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	}
	return v
}

// WithStdStreams overrides stdout and stderr for all commands executed with the returned
// context.
func WithStdStreams(ctx context.Context, stdout io.Writer, stderr io.Writer) context.Context {
	v := getStdStreamsValue(ctx)
	v.stdout = stdout
	v.stderr = stderr
	return context.WithValue(ctx, stdStreamsKey{}, v)
}

// WithStdin overrides the input used for prompts.
func WithStdin(ctx context.Context, stdin io.Reader) context.Context {
	v := getStdStreamsValue(ctx)
	v.stdin = stdin
	return context.WithValue(ctx, stdStreamsKey{}, v)
}

func getStdStreams(ctx context.Context) (io.Writer, io.Writer) {
	v := getStdStreamsValue(ctx)
	return v.stdout, v.stderr
}

func getStdin(ctx context.Context) io.Reader {
	return getStdStreamsValue(ctx).stdin
}

type stringWriter struct {
	io.Writer
}

func (w *stringWriter) WriteString(s string) (n int, err error) {
	return w.Write([]byte(s))
}

func getStdout(ctx context.Context) *stringWriter {
	stdout, _ := getStdStreams(ctx)
	return &stringWriter{stdout}
}
