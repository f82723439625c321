// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package login provides the sources of the one-time bootstrap
// credential that starts a vendor session.
//
// The vendor issues that credential as the oauth_token cookie at the end
// of its embedded sign-in flow. Driving a browser through the flow is
// out of scope; [Prompt] shows the user where to sign in and reads the
// cookie value they paste back. [Static] and [File] serve credentials
// obtained some other way, such as from a previous browser session.
package login

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// SetupURL is the entry point of the vendor's embedded sign-in flow.
const SetupURL = "https://accounts.google.com/EmbeddedSetup/identifier?flowName=EmbeddedSetupAndroid"

// ErrNoToken is returned when a provider has no credential to give.
var ErrNoToken = errors.New("no bootstrap credential")

// Static is a bootstrap credential known in advance.
type Static string

func (token Static) BootstrapToken(context.Context, string) (string, error) {
	if token == "" {
		return "", ErrNoToken
	}
	return string(token), nil
}

// File reads the bootstrap credential from a file on every call.
// Trailing newlines are stripped.
type File string

func (path File) BootstrapToken(context.Context, string) (string, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return "", fmt.Errorf("reading bootstrap credential: %w", err)
	}
	token := strings.TrimRight(string(data), "\r\n")
	if token == "" {
		return "", fmt.Errorf("%s: %w", path, ErrNoToken)
	}
	return token, nil
}

// Prompt asks the user to sign in and paste the oauth_token cookie.
// When In is a terminal the value is read without echo.
//
// Cancelling the context returns immediately but leaves one goroutine
// blocked reading In until a line arrives or In is closed. Callers that
// retry should close In first or reuse the same Prompt only after the
// user presses enter.
type Prompt struct {
	// In is read for the credential. Default: os.Stdin.
	In io.Reader

	// Out receives the instructions. Default: os.Stderr.
	Out io.Writer
}

func (prompt Prompt) BootstrapToken(ctx context.Context, user string) (string, error) {
	in := prompt.In
	if in == nil {
		in = os.Stdin
	}
	out := prompt.Out
	if out == nil {
		out = os.Stderr
	}

	fmt.Fprintf(out, "Sign in as %s at:\n\n  %s\n\n", user, SetupURL)
	fmt.Fprintln(out, "When the flow finishes, copy the value of the oauth_token cookie.")
	fmt.Fprint(out, "oauth_token: ")

	type result struct {
		token string
		err   error
	}
	done := make(chan result, 1)
	go func() {
		token, err := readToken(in)
		done <- result{token, err}
	}()

	// A blocked read cannot be interrupted without closing In. On
	// cancellation the reader goroutine stays parked in the read, and
	// for a terminal keeps it in no-echo mode, until the next newline or
	// the input closes; its result is then discarded.
	select {
	case outcome := <-done:
		fmt.Fprintln(out)
		if outcome.err != nil {
			return "", outcome.err
		}
		if outcome.token == "" {
			return "", ErrNoToken
		}
		return outcome.token, nil
	case <-ctx.Done():
		fmt.Fprintln(out)
		return "", ctx.Err()
	}
}

func readToken(in io.Reader) (string, error) {
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		data, err := term.ReadPassword(int(file.Fd()))
		if err != nil {
			return "", fmt.Errorf("reading bootstrap credential: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading bootstrap credential: %w", err)
	}
	return strings.TrimSpace(line), nil
}
