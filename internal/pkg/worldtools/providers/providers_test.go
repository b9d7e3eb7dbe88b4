package providers

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	goopenai "github.com/sashabaranov/go-openai"
	. "github.com/smartystreets/goconvey/convey"

	"protetor/internal/config"
	"protetor/internal/pkg/tts"
	"protetor/internal/pkg/worldtools"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake-png-body")

type fakeOpenAI struct {
	speechReq goopenai.CreateSpeechRequest
	imageReq  goopenai.ImageRequest
	audio     string
	b64       string
	err       error
}

func (f *fakeOpenAI) CreateSpeech(_ context.Context, req goopenai.CreateSpeechRequest) (goopenai.RawResponse, error) {
	f.speechReq = req
	if f.err != nil {
		return goopenai.RawResponse{}, f.err
	}
	return goopenai.RawResponse{ReadCloser: io.NopCloser(strings.NewReader(f.audio))}, nil
}

func (f *fakeOpenAI) CreateImage(_ context.Context, req goopenai.ImageRequest) (goopenai.ImageResponse, error) {
	f.imageReq = req
	if f.err != nil {
		return goopenai.ImageResponse{}, f.err
	}
	if f.b64 == "" {
		return goopenai.ImageResponse{}, nil
	}
	return goopenai.ImageResponse{Data: []goopenai.ImageResponseDataInner{{B64JSON: f.b64}}}, nil
}

type fakeChatModel struct {
	messages []*schema.Message
	reply    *schema.Message
	err      error
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.messages = input
	return f.reply, f.err
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestOpenAISpeechProvider(t *testing.T) {
	Convey("OpenAI 语音合成", t, func() {
		fake := &fakeOpenAI{audio: "ID3-mp3-bytes"}

		Convey("默认使用 tts-1 / alloy / mp3", func() {
			p := NewOpenAISpeechProvider(fake, &config.OpenAIConfig{})
			audio, err := p.Synthesize(context.Background(), "Olá, Ana, como você imagina o mundo perfeito?")
			So(err, ShouldBeNil)
			So(string(audio), ShouldEqual, "ID3-mp3-bytes")
			So(fake.speechReq.Model, ShouldEqual, goopenai.TTSModel1)
			So(fake.speechReq.Voice, ShouldEqual, goopenai.VoiceAlloy)
			So(fake.speechReq.ResponseFormat, ShouldEqual, goopenai.SpeechResponseFormatMp3)
			So(fake.speechReq.Input, ShouldContainSubstring, "Ana")
		})

		Convey("空音频视为返回异常", func() {
			fake.audio = ""
			_, err := NewOpenAISpeechProvider(fake, &config.OpenAIConfig{}).Synthesize(context.Background(), "x")
			So(worldtools.KindOf(err), ShouldEqual, worldtools.KindInvalidResponse)
		})

		Convey("限流错误", func() {
			fake.err = &goopenai.APIError{HTTPStatusCode: 429, Message: "Rate limit reached"}
			_, err := NewOpenAISpeechProvider(fake, &config.OpenAIConfig{}).Synthesize(context.Background(), "x")
			So(worldtools.KindOf(err), ShouldEqual, worldtools.KindRateLimit)
		})
	})
}

func TestOpenAIImageProvider(t *testing.T) {
	Convey("OpenAI 图片生成", t, func() {
		fake := &fakeOpenAI{b64: base64.StdEncoding.EncodeToString(pngBytes)}
		p := NewOpenAIImageProvider(fake, &config.OpenAIConfig{})

		Convey("解码 b64_json", func() {
			data, err := p.GenerateImage(context.Background(), "Photorealistic: forest.")
			So(err, ShouldBeNil)
			So(data, ShouldResemble, pngBytes)
			So(fake.imageReq.Model, ShouldEqual, goopenai.CreateImageModelDallE3)
			So(fake.imageReq.Size, ShouldEqual, goopenai.CreateImageSize1024x1024)
			So(fake.imageReq.ResponseFormat, ShouldEqual, goopenai.CreateImageResponseFormatB64JSON)
			So(fake.imageReq.N, ShouldEqual, 1)
		})

		Convey("没有图片数据", func() {
			fake.b64 = ""
			_, err := p.GenerateImage(context.Background(), "x")
			So(worldtools.KindOf(err), ShouldEqual, worldtools.KindInvalidResponse)
		})

		Convey("base64 无法解码", func() {
			fake.b64 = "%%%not-base64"
			_, err := p.GenerateImage(context.Background(), "x")
			So(worldtools.KindOf(err), ShouldEqual, worldtools.KindInvalidResponse)
		})

		Convey("内容审核拒绝", func() {
			fake.err = &goopenai.APIError{Code: "content_policy_violation", HTTPStatusCode: 400, Message: "rejected"}
			_, err := p.GenerateImage(context.Background(), "x")
			So(worldtools.KindOf(err), ShouldEqual, worldtools.KindContentPolicy)

			fake.err = &goopenai.APIError{HTTPStatusCode: 400, Message: "Your request was rejected as a result of our safety system."}
			_, err = p.GenerateImage(context.Background(), "x")
			So(worldtools.KindOf(err), ShouldEqual, worldtools.KindContentPolicy)
		})

		Convey("服务端错误", func() {
			fake.err = &goopenai.RequestError{HTTPStatusCode: 503, Err: errors.New("bad gateway")}
			_, err := p.GenerateImage(context.Background(), "x")
			So(worldtools.KindOf(err), ShouldEqual, worldtools.KindUnavailable)
		})
	})
}

func TestEinoProvider(t *testing.T) {
	Convey("Eino 描述增强", t, func() {
		Convey("发送系统指令和用户消息", func() {
			fake := &fakeChatModel{reply: schema.AssistantMessage("  Floresta densa ao amanhecer \n", nil)}
			text, err := NewEinoProvider(fake).Generate(context.Background(), "system", "user")
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "Floresta densa ao amanhecer")
			So(len(fake.messages), ShouldEqual, 2)
			So(fake.messages[0].Role, ShouldEqual, schema.System)
			So(fake.messages[1].Role, ShouldEqual, schema.User)
			So(fake.messages[1].Content, ShouldEqual, "user")
		})

		Convey("空回复", func() {
			_, err := NewEinoProvider(&fakeChatModel{}).Generate(context.Background(), "s", "u")
			So(worldtools.KindOf(err), ShouldEqual, worldtools.KindInvalidResponse)
		})

		Convey("调用超时", func() {
			_, err := NewEinoProvider(&fakeChatModel{err: context.DeadlineExceeded}).Generate(context.Background(), "s", "u")
			So(worldtools.KindOf(err), ShouldEqual, worldtools.KindTimeout)
		})
	})
}

type countingSpeech struct {
	calls int
	err   error
}

func (c *countingSpeech) Synthesize(ctx context.Context, _ string) ([]byte, error) {
	c.calls++
	if err := ctx.Err(); err != nil {
		return nil, worldtools.Classify("speech", err)
	}
	if c.err != nil {
		return nil, c.err
	}
	return []byte("mp3"), nil
}

func TestBreaker(t *testing.T) {
	Convey("熔断器", t, func() {
		Convey("MaxFailures 为 0 时不包装", func() {
			inner := &countingSpeech{}
			So(NewBreaker("speech", config.BreakerConfig{}), ShouldBeNil)
			So(GuardSpeech(inner, nil), ShouldEqual, inner)
		})

		Convey("连续失败后直接返回 unavailable", func() {
			inner := &countingSpeech{err: worldtools.NewProviderError("speech", worldtools.KindNetwork, errors.New("reset"))}
			guarded := GuardSpeech(inner, NewBreaker("speech", config.BreakerConfig{MaxFailures: 2, OpenTimeout: time.Minute}))

			for i := 0; i < 2; i++ {
				_, err := guarded.Synthesize(context.Background(), "x")
				So(worldtools.KindOf(err), ShouldEqual, worldtools.KindNetwork)
			}

			_, err := guarded.Synthesize(context.Background(), "x")
			So(worldtools.KindOf(err), ShouldEqual, worldtools.KindUnavailable)
			So(inner.calls, ShouldEqual, 2)
		})

		Convey("内容审核拒绝不计入失败", func() {
			inner := &countingSpeech{err: worldtools.NewProviderError("speech", worldtools.KindContentPolicy, errors.New("blocked"))}
			guarded := GuardSpeech(inner, NewBreaker("speech", config.BreakerConfig{MaxFailures: 1, OpenTimeout: time.Minute}))

			for i := 0; i < 3; i++ {
				_, err := guarded.Synthesize(context.Background(), "x")
				So(worldtools.KindOf(err), ShouldEqual, worldtools.KindContentPolicy)
			}
			So(inner.calls, ShouldEqual, 3)
		})

		Convey("调用方取消不计入失败", func() {
			inner := &countingSpeech{}
			guarded := GuardSpeech(inner, NewBreaker("speech", config.BreakerConfig{MaxFailures: 3, OpenTimeout: time.Minute}))

			canceled, cancel := context.WithCancel(context.Background())
			cancel()
			for i := 0; i < 3; i++ {
				_, err := guarded.Synthesize(canceled, "x")
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(worldtools.KindOf(err), ShouldEqual, worldtools.KindCanceled)
			}

			audio, err := guarded.Synthesize(context.Background(), "x")
			So(err, ShouldBeNil)
			So(string(audio), ShouldEqual, "mp3")
			So(inner.calls, ShouldEqual, 4)
		})

		Convey("未归类的取消错误同样不计入失败", func() {
			inner := &countingSpeech{err: context.Canceled}
			guarded := GuardSpeech(inner, NewBreaker("speech", config.BreakerConfig{MaxFailures: 1, OpenTimeout: time.Minute}))

			for i := 0; i < 2; i++ {
				_, err := guarded.Synthesize(context.Background(), "x")
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			}
			So(inner.calls, ShouldEqual, 2)
		})
	})
}

type fakeVolc struct{ err error }

func (f *fakeVolc) Synthesize(context.Context, string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("mp3"), nil
}

func TestVolcSpeechProvider(t *testing.T) {
	Convey("火山引擎语音合成错误归类", t, func() {
		cases := []struct {
			err  error
			kind worldtools.ErrorKind
		}{
			{&tts.APIError{StatusCode: 200, Code: 3003}, worldtools.KindRateLimit},
			{&tts.APIError{StatusCode: 200, Code: 3010}, worldtools.KindInvalidResponse},
			{&tts.APIError{StatusCode: 200, Code: 3030}, worldtools.KindTimeout},
			{&tts.APIError{StatusCode: 200, Code: 3050}, worldtools.KindUnavailable},
			{&tts.APIError{StatusCode: 401, Code: 3001}, worldtools.KindAuth},
			{tts.ErrNoAudioData, worldtools.KindInvalidResponse},
			{context.DeadlineExceeded, worldtools.KindTimeout},
		}
		for _, tc := range cases {
			p := &VolcSpeechProvider{client: &fakeVolc{err: tc.err}}
			_, err := p.Synthesize(context.Background(), "x")
			So(worldtools.KindOf(err), ShouldEqual, tc.kind)
		}

		audio, err := (&VolcSpeechProvider{client: &fakeVolc{}}).Synthesize(context.Background(), "x")
		So(err, ShouldBeNil)
		So(string(audio), ShouldEqual, "mp3")
	})
}
