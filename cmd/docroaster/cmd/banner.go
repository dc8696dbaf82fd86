package cmd

import "fmt"

// Version is set at build time via -ldflags.
var Version = "dev"

const banner = `
  ____              ____                  _
 |  _ \  ___   ___ |  _ \ ___   __ _ ___| |_ ___ _ __
 | | | |/ _ \ / __|| |_) / _ \ / _` + "`" + ` / __| __/ _ \ '__|
 | |_| | (_) | (__ |  _ < (_) | (_| \__ \ ||  __/ |
 |____/ \___/ \___||_| \_\___/ \__,_|___/\__\___|_|
`

func printBanner() {
	fmt.Printf("\x1b[32m%s\x1b[0m", banner)
	fmt.Printf("\x1b[32m  Document Analysis Console - Version %s\x1b[0m\n\n", Version)
}
