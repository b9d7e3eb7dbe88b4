package component

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"protetor/internal/config"
)

func TestNewChatModel(t *testing.T) {
	Convey("NewChatModel 按提供者创建模型", t, func() {
		ctx := context.Background()

		Convey("未知提供者", func() {
			_, err := NewChatModel(ctx, &config.AIConfig{Provider: "claude"}, &config.OpenAIConfig{})
			So(err, ShouldNotBeNil)
		})

		Convey("openai 缺少凭证", func() {
			_, err := NewChatModel(ctx, &config.AIConfig{Provider: "openai"}, &config.OpenAIConfig{})
			So(err, ShouldNotBeNil)
		})

		Convey("openai 沿用 openai 段的凭证", func() {
			m, err := NewChatModel(ctx, &config.AIConfig{}, &config.OpenAIConfig{APIKey: "sk-test"})
			So(err, ShouldBeNil)
			So(m, ShouldNotBeNil)
		})
	})
}

func TestOrgTransport(t *testing.T) {
	Convey("请求附加组织头", t, func() {
		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("OpenAI-Organization")
		}))
		defer server.Close()

		resp, err := newHTTPClient("org-123", 5*time.Second).Get(server.URL)
		So(err, ShouldBeNil)
		resp.Body.Close()
		So(got, ShouldEqual, "org-123")

		resp, err = newHTTPClient("", 5*time.Second).Get(server.URL)
		So(err, ShouldBeNil)
		resp.Body.Close()
		So(got, ShouldEqual, "")
	})
}
