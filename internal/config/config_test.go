package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 5000, Mode: "release"},
		Storage: StorageConfig{Type: "local", Local: &LocalConfig{BasePath: "."}},
	}
}

func TestConfig_Validate(t *testing.T) {
	Convey("Validate 校验配置", t, func() {
		cfg := validConfig()

		Convey("默认配置有效", func() {
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("端口越界", func() {
			cfg.Server.Port = 70000
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("未知模式", func() {
			cfg.Server.Mode = "prod"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("未知存储类型", func() {
			cfg.Storage.Type = "s3"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("图片提供者", func() {
			cfg.Image.Provider = "ark"
			So(cfg.Validate(), ShouldBeNil)
			cfg.Image.Provider = "midjourney"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("语音提供者", func() {
			cfg.Speech.Provider = "volcengine"
			So(cfg.Validate(), ShouldBeNil)
			cfg.Speech.Provider = "polly"
			So(cfg.Validate(), ShouldNotBeNil)
		})
	})
}

func TestServerConfig_BaseURL(t *testing.T) {
	Convey("BaseURL 对外地址", t, func() {
		So((&ServerConfig{PublicBaseURL: "https://protetor.example"}).BaseURL(), ShouldEqual, "https://protetor.example")
		So((&ServerConfig{Host: "0.0.0.0", Port: 5000}).BaseURL(), ShouldEqual, "http://127.0.0.1:5000")
		So((&ServerConfig{Port: 8080}).BaseURL(), ShouldEqual, "http://127.0.0.1:8080")
		So((&ServerConfig{Host: "10.0.0.2", Port: 5000}).BaseURL(), ShouldEqual, "http://10.0.0.2:5000")
	})
}
