package worldtools

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeName(t *testing.T) {
	Convey("SanitizeName 生成音频缓存 key", t, func() {
		Convey("小写并替换空格和斜杠", func() {
			So(SanitizeName("Ana"), ShouldEqual, "ana")
			So(SanitizeName("Ana Maria"), ShouldEqual, "ana_maria")
			So(SanitizeName(`A/B\C`), ShouldEqual, "a_b_c")
			So(SanitizeName("João"), ShouldEqual, "joão")
		})

		Convey("结果再次处理保持不变", func() {
			for _, name := range []string{"Ana", "Ana Maria", `x/Y\z w`, "", "ÉLODIE"} {
				once := SanitizeName(name)
				So(SanitizeName(once), ShouldEqual, once)
			}
		})

		Convey("同一访客不同写法命中同一个文件", func() {
			So(AudioFilename("Ana Maria"), ShouldEqual, "audio_ana_maria.mp3")
			So(AudioFilename("ana maria"), ShouldEqual, AudioFilename("ANA MARIA"))
		})
	})
}

func TestPrompts(t *testing.T) {
	Convey("固定文案", t, func() {
		So(GreetingText("Ana"), ShouldEqual, "Olá, Ana, como você imagina o mundo perfeito?")
		So(EnrichmentPrompt("mais árvores"), ShouldContainSubstring, "'mundo perfeito com mais árvores'")
		So(EnrichmentSystemPrompt, ShouldContainSubstring, "máximo 20 palavras")
		So(ImagePrompt("  floresta ao amanhecer \n"), ShouldEqual,
			"Photorealistic: floresta ao amanhecer. High quality, realistic lighting, detailed.")
	})
}

func TestDetectImageFormat(t *testing.T) {
	Convey("DetectImageFormat 根据文件头识别格式", t, func() {
		So(DetectImageFormat([]byte("\x89PNG\r\n\x1a\n....")), ShouldEqual, "png")
		So(DetectImageFormat([]byte{0xFF, 0xD8, 0xFF, 0xE0}), ShouldEqual, "jpeg")
		So(DetectImageFormat([]byte("GIF89a")), ShouldEqual, "gif")
		So(DetectImageFormat([]byte("RIFF\x00\x00\x00\x00WEBPVP8 ")), ShouldEqual, "webp")
		So(DetectImageFormat([]byte("not an image")), ShouldEqual, "")
		So(DetectImageFormat(nil), ShouldEqual, "")
	})

	Convey("ImageExt 格式对应扩展名", t, func() {
		So(ImageExt("png"), ShouldEqual, ".png")
		So(ImageExt("jpeg"), ShouldEqual, ".jpg")
		So(ImageExt("webp"), ShouldEqual, ".webp")
		So(ImageExt(""), ShouldEqual, "")
		So(IsImageExt(".JPG"), ShouldBeTrue)
		So(IsImageExt(".gif"), ShouldBeTrue)
		So(IsImageExt(".mp3"), ShouldBeFalse)
	})
}

type fakeNetErr struct{ timeout bool }

func (e fakeNetErr) Error() string   { return "dial tcp: fake" }
func (e fakeNetErr) Timeout() bool   { return e.timeout }
func (e fakeNetErr) Temporary() bool { return false }

func TestClassify(t *testing.T) {
	Convey("Classify 归类外部调用错误", t, func() {
		Convey("nil 返回 nil", func() {
			So(Classify("chat", nil), ShouldBeNil)
		})

		Convey("已经归类的错误原样返回", func() {
			pe := NewProviderError("image", KindContentPolicy, errors.New("blocked"))
			So(Classify("chat", fmt.Errorf("wrap: %w", pe)), ShouldEqual, pe)
		})

		Convey("超时", func() {
			So(Classify("chat", context.DeadlineExceeded).Kind, ShouldEqual, KindTimeout)
			So(Classify("chat", fakeNetErr{timeout: true}).Kind, ShouldEqual, KindTimeout)
		})

		Convey("调用方取消", func() {
			So(Classify("chat", context.Canceled).Kind, ShouldEqual, KindCanceled)
			urlErr := &url.Error{Op: "Post", URL: "https://api.example.com/v1/chat", Err: context.Canceled}
			pe := Classify("chat", urlErr)
			So(pe.Kind, ShouldEqual, KindCanceled)
			So(errors.Is(pe, context.Canceled), ShouldBeTrue)
		})

		Convey("网络错误", func() {
			pe := Classify("speech", fakeNetErr{})
			So(pe.Kind, ShouldEqual, KindNetwork)
			So(pe.Op, ShouldEqual, "speech")
		})

		Convey("错误信息中的状态码", func() {
			So(Classify("chat", errors.New("error, status code: 429, message: slow down")).Kind, ShouldEqual, KindRateLimit)
			So(Classify("chat", errors.New("error, status code: 503, message: overloaded")).Kind, ShouldEqual, KindUnavailable)
			So(Classify("chat", errors.New("error, status code: 401")).Kind, ShouldEqual, KindAuth)
		})

		Convey("无法识别的错误", func() {
			So(Classify("chat", errors.New("boom")).Kind, ShouldEqual, KindUnknown)
		})

		Convey("KindOf 穿透包装", func() {
			err := fmt.Errorf("outer: %w", NewProviderError("image", KindTimeout, errors.New("slow")))
			So(KindOf(err), ShouldEqual, KindTimeout)
			So(KindOf(errors.New("plain")), ShouldEqual, KindUnknown)
			So(errors.Unwrap(NewProviderError("x", KindUnknown, context.Canceled)), ShouldEqual, context.Canceled)
		})
	})
}
