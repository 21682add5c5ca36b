// cmd/qsk/main.go
package main

import (
	"qsk/internal/app"
	"qsk/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
