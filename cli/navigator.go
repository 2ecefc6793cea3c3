package main

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// consoleNavigator directs the user to a console route, since the CLI has no
// page of its own to navigate.
type consoleNavigator struct {
	consoleAddress string
	browse         bool
	out            io.Writer
	open           func(url string) error
	logger         *zap.Logger
}

func (c *consoleNavigator) Navigate(route string) {
	url := fmt.Sprintf(
		"%s/%s",
		strings.TrimSuffix(c.consoleAddress, "/"),
		strings.TrimPrefix(route, "/"),
	)
	fmt.Fprintf(
		c.out,
		"The API server did not accept your credentials. Please log in again at  %s\n",
		url,
	)
	if !c.browse {
		return
	}
	if err := c.open(url); err != nil {
		c.logger.Warn("error opening login page", zap.Error(err))
	}
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command(
			"rundll32",
			"url.dll,FileProtocolHandler",
			url,
		).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		return errors.Errorf("unsupported OS %q", runtime.GOOS)
	}
}
