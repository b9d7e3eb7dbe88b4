package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"protetor/internal/config"
)

func TestClient_Synthesize(t *testing.T) {
	Convey("火山引擎 TTS 合成", t, func() {
		var got synthesizeRequest
		var authHeader string
		status := http.StatusOK
		resp := synthesizeResponse{Code: codeSuccess, Data: base64.StdEncoding.EncodeToString([]byte("ID3-mp3"))}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client, err := NewClient(&config.VolcTTSConfig{APIURL: server.URL, AccessToken: "token", AppID: "app", Language: "pt"})
		So(err, ShouldBeNil)

		Convey("成功返回 mp3", func() {
			audio, err := client.Synthesize(context.Background(), "Olá, Ana")
			So(err, ShouldBeNil)
			So(string(audio), ShouldEqual, "ID3-mp3")
			So(authHeader, ShouldEqual, "Bearer; token")
			So(got.Request.Text, ShouldEqual, "Olá, Ana")
			So(got.Audio.Encoding, ShouldEqual, "mp3")
			So(got.Audio.VoiceType, ShouldEqual, defaultVoiceType)
			So(got.Audio.Language, ShouldEqual, "pt")
			So(got.App.Cluster, ShouldEqual, defaultCluster)
			So(got.Request.ReqID, ShouldEqual, got.User.UID)
		})

		Convey("业务错误码", func() {
			resp = synthesizeResponse{Code: 3010, Message: "text too long"}
			_, err := client.Synthesize(context.Background(), "x")
			var apiErr *APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Code, ShouldEqual, 3010)
		})

		Convey("HTTP 错误", func() {
			status = http.StatusTooManyRequests
			resp = synthesizeResponse{Code: 3003, Message: "rate limited"}
			_, err := client.Synthesize(context.Background(), "x")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "status code: 429")
		})

		Convey("没有音频数据", func() {
			resp = synthesizeResponse{Code: codeSuccess}
			_, err := client.Synthesize(context.Background(), "x")
			So(errors.Is(err, ErrNoAudioData), ShouldBeTrue)
		})
	})

	Convey("缺少凭证", t, func() {
		_, err := NewClient(&config.VolcTTSConfig{})
		So(err, ShouldNotBeNil)
	})
}
