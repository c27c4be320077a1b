// Command unidump prints the DMX levels OLA currently holds for the configured channels.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nickysemenza/gola"
	"github.com/robmorgan/fadeled/config"
	"github.com/robmorgan/fadeled/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	logger := logger.GetProjectLogger()

	cfg := config.NewFadeConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Fatalf("error loading config. err='%v'", err)
		}
	}

	client, err := gola.New(cfg.OLAAddress)
	if err != nil {
		logger.Fatalf("could not create client: %v", err)
	}
	defer client.Close()

	x, err := client.GetDmx(cfg.Universe)
	if err != nil {
		logger.Fatalf("GetDmx: %d: %v", cfg.Universe, err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tADDRESS\tLEVEL")
	for _, line := range dumpLines(cfg.Channels, x.Data) {
		fmt.Fprintln(w, line)
	}
	w.Flush()
}

func dumpLines(channels []config.ChannelConfig, data []byte) []string {
	lines := make([]string, 0, len(channels))
	for _, ch := range channels {
		level := "-"
		if ch.Address >= 1 && ch.Address <= len(data) {
			level = fmt.Sprint(data[ch.Address-1])
		}
		lines = append(lines, fmt.Sprintf("%s\t%d\t%s", ch.Name, ch.Address, level))
	}
	return lines
}
