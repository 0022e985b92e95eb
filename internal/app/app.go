// Package app provides the main application helper for the bus probe.
package app

import (
	"github.com/retroenv/retrobus/internal/mapper"
	"github.com/retroenv/retrobus/internal/options"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("retrobus", log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints the information about the input file and the cartridge.
func PrintInfo(logger *log.Logger, opts options.Program, cart *cartridge.Cartridge) {
	if opts.Quiet {
		return
	}

	logger.Info("Processing NES ROM",
		log.String("file", opts.Input),
		log.Uint8("mapper", cart.Mapper),
		log.Int("prg_banks", len(cart.PRG)/mapper.BankWindowSize),
	)
}
