package main

import (
	"os"

	"protetor/cmd"
)

// @title        Protetor Selvagem API
// @version      1.0
// @description  个性化问候语音与"mundo perfeito"图片生成服务
// @BasePath     /
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
