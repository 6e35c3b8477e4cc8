//go:build tinygo && baremetal

package main

import (
	"whirl/app"
	"whirl/hal"
)

func main() {
	app.Run(hal.New())
}
