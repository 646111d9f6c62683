// Package speech adapts the external speech service: audio to text for
// inbound voice questions, text to audio for spoken answers. Audio is
// carried base64-encoded on both directions.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "fairbot/internal/common/errors"
	"fairbot/internal/common/logger"
)

var (
	ErrTranscribeFailed = errors.New("SPEECH_TRANSCRIBE_FAILED")
	ErrSynthesisFailed  = errors.New("SPEECH_SYNTHESIS_FAILED")
)

// langMap pairs each supported code with the recognizer and synthesizer
// variants the service expects. Unknown codes fall back to French.
var langMap = map[string]struct {
	Speech string
	TTS    string
}{
	"fr": {"fr-FR", "fr"},
	"ar": {"ar-SA", "ar"},
	"en": {"en-US", "en"},
	"de": {"de-DE", "de"},
	"es": {"es-ES", "es"},
	"ja": {"ja-JP", "ja"},
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(config Config, log logger.Logger) *Client {
	return &Client{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: log.With(map[string]interface{}{
			"component": "speech-client",
		}),
	}
}

type transcribeRequest struct {
	Audio string `json:"audio"`
	Lang  string `json:"lang"`
}

type transcribeResponse struct {
	Text string `json:"text"`
}

type synthesizeRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type synthesizeResponse struct {
	Audio string `json:"audio"`
}

// Transcribe converts base64 audio into text. An empty transcription is
// returned as an empty string, not an error.
func (c *Client) Transcribe(ctx context.Context, b64Audio, lang string) (string, error) {
	payload, err := json.Marshal(transcribeRequest{Audio: b64Audio, Lang: speechLang(lang).Speech})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrTranscribeFailed, err)
	}

	var resp transcribeResponse
	if err := c.post(ctx, "/transcribe", payload, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranscribeFailed, apperrors.NewSpeechTranscribeFailedError(err))
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		c.logger.Warn("empty transcription", map[string]interface{}{"lang": lang})
	}
	return text, nil
}

// Synthesize converts answer text into base64 audio. The text is
// prepared for voicing first: clock times are rewritten for natural
// reading and markup characters are dropped.
func (c *Client) Synthesize(ctx context.Context, text, lang string) (string, error) {
	text = PrepareForVoice(text)
	if text == "" {
		return "", fmt.Errorf("%w: nothing to voice", ErrSynthesisFailed)
	}

	payload, err := json.Marshal(synthesizeRequest{Text: text, Lang: speechLang(lang).TTS})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrSynthesisFailed, err)
	}

	var resp synthesizeResponse
	if err := c.post(ctx, "/synthesize", payload, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSynthesisFailed, apperrors.NewSpeechSynthesisFailedError(err))
	}
	if resp.Audio == "" {
		return "", fmt.Errorf("%w: service returned no audio", ErrSynthesisFailed)
	}
	return resp.Audio, nil
}

func (c *Client) post(ctx context.Context, path string, payload []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("speech service returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var (
	clockPattern  = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	markupPattern = regexp.MustCompile(`[^\p{L}\p{N}\s,.!?]`)
)

// PrepareForVoice rewrites "HH:MM" times into words the synthesizer
// reads naturally ("15:00" becomes "15", "14:30" becomes "14 30") and
// strips quoting and markup characters.
func PrepareForVoice(text string) string {
	text = clockPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := clockPattern.FindStringSubmatch(m)
		hours, _ := strconv.Atoi(sub[1])
		minutes, _ := strconv.Atoi(sub[2])
		if minutes == 0 {
			return strconv.Itoa(hours)
		}
		return fmt.Sprintf("%d %02d", hours, minutes)
	})

	replacer := strings.NewReplacer(`"`, "", "'", "", "«", "", "»", "", ";", "", "...", ".")
	text = replacer.Replace(text)

	text = markupPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func speechLang(lang string) struct {
	Speech string
	TTS    string
} {
	if v, ok := langMap[lang]; ok {
		return v
	}
	return langMap["fr"]
}
