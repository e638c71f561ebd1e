package mojang

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"
)

type Emitter interface {
	Emit(topic string, args ...interface{})
}

type MojangApi struct {
	http       *http.Client
	emitter    Emitter
	uuidsUrl   string
	profileUrl string
}

func NewMojangApi(
	http *http.Client,
	emitter Emitter,
	uuidsUrl string,
	profileUrl string,
) *MojangApi {
	if uuidsUrl == "" {
		uuidsUrl = "https://api.mojang.com/users/profiles/minecraft/"
	}

	if profileUrl == "" {
		profileUrl = "https://sessionserver.mojang.com/session/minecraft/profile/"
	}

	if !strings.HasSuffix(uuidsUrl, "/") {
		uuidsUrl += "/"
	}

	if !strings.HasSuffix(profileUrl, "/") {
		profileUrl += "/"
	}

	return &MojangApi{
		http,
		emitter,
		uuidsUrl,
		profileUrl,
	}
}

// Delays to sleep between retries when Mojang responds with 429.
// Once the schedule is exhausted the last 429 is reported to the caller.
var rateLimitDelays = []time.Duration{time.Second, 10 * time.Second, time.Minute}

var backoffSleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// UsernameToUuid resolves a username into its profile information.
// See https://wiki.vg/Mojang_API#Username_to_UUID
func (c *MojangApi) UsernameToUuid(ctx context.Context, username string) (*ProfileInfo, error) {
	url := c.uuidsUrl + username
	request, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	response, err := c.http.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode == 204 || response.StatusCode == 404 {
		return nil, &ProfileNotFoundError{Who: username}
	}

	if response.StatusCode != 200 {
		return nil, errorFromResponse(response)
	}

	body, _ := io.ReadAll(response.Body)

	var result *ProfileInfo
	if err := json.Unmarshal(body, &result); err != nil {
		c.emitter.Emit("mojang:response_malformed", url, body, err)
		return nil, &ResponseDecodeError{Raw: body, Err: err}
	}

	return result, nil
}

// UuidToProfile obtains the profile with its textures property for the
// provided uuid. Dashes in the uuid are allowed.
// See https://wiki.vg/Mojang_API#UUID_-.3E_Profile_.2B_Skin.2FCape
func (c *MojangApi) UuidToProfile(ctx context.Context, uuid string) (*ProfileResponse, error) {
	normalizedUuid := strings.ReplaceAll(uuid, "-", "")
	url := c.profileUrl + normalizedUuid

	response, err := c.getSurvivingRateLimits(ctx, url)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode == 204 || response.StatusCode == 404 {
		return nil, &ProfileNotFoundError{Who: normalizedUuid}
	}

	if response.StatusCode != 200 {
		return nil, errorFromResponse(response)
	}

	body, _ := io.ReadAll(response.Body)

	var result *ProfileResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.emitter.Emit("mojang:response_malformed", url, body, err)
		return nil, &ResponseDecodeError{Raw: body, Err: err}
	}

	return result, nil
}

// DownloadSkin fetches the skin bitmap behind the textures url and decodes it.
func (c *MojangApi) DownloadSkin(ctx context.Context, url string) (image.Image, error) {
	request, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	response, err := c.http.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != 200 {
		return nil, errorFromResponse(response)
	}

	img, _, err := image.Decode(response.Body)
	if err != nil {
		return nil, &ResponseDecodeError{Err: err}
	}

	return img, nil
}

// getSurvivingRateLimits performs the GET request, sleeping and retrying by
// the rateLimitDelays schedule for as long as Mojang keeps responding with
// 429. The last 429 response is returned as is once the schedule runs out.
func (c *MojangApi) getSurvivingRateLimits(ctx context.Context, url string) (*http.Response, error) {
	response, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	for attempt := 0; response.StatusCode == 429; attempt++ {
		if attempt == len(rateLimitDelays) {
			c.emitter.Emit("mojang:rate_limit_exhausted", url)
			break
		}

		delay := rateLimitDelays[attempt]
		c.emitter.Emit("mojang:rate_limited", url, attempt+1, delay)
		response.Body.Close()
		if err := backoffSleep(ctx, delay); err != nil {
			return nil, err
		}

		response, err = c.get(ctx, url)
		if err != nil {
			return nil, err
		}
	}

	return response, nil
}

func (c *MojangApi) get(ctx context.Context, url string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	return c.http.Do(request)
}

type ProfileInfo struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	IsLegacy bool   `json:"legacy,omitempty"`
	IsDemo   bool   `json:"demo,omitempty"`
}

type ProfileResponse struct {
	Id    string      `json:"id"`
	Name  string      `json:"name"`
	Props []*Property `json:"properties"`
}

type Property struct {
	Name      string `json:"name"`
	Signature string `json:"signature,omitempty"`
	Value     string `json:"value"`
}

type TexturesProp struct {
	Timestamp   int64             `json:"timestamp"`
	ProfileID   string            `json:"profileId"`
	ProfileName string            `json:"profileName"`
	Textures    *TexturesResponse `json:"textures"`
}

type TexturesResponse struct {
	Skin *SkinTexturesResponse `json:"SKIN,omitempty"`
	Cape *CapeTexturesResponse `json:"CAPE,omitempty"`
}

type SkinTexturesResponse struct {
	Url      string                `json:"url"`
	Metadata *SkinTexturesMetadata `json:"metadata,omitempty"`
}

type SkinTexturesMetadata struct {
	Model string `json:"model"`
}

type CapeTexturesResponse struct {
	Url string `json:"url"`
}

// DecodeTextures decodes the payload of the first profile property, which
// Mojang serves as the base64-encoded textures document. A profile without
// properties yields nil with no error.
func (t *ProfileResponse) DecodeTextures() (*TexturesProp, error) {
	if len(t.Props) == 0 {
		return nil, nil
	}

	jsonStr, err := base64.StdEncoding.DecodeString(t.Props[0].Value)
	if err != nil {
		return nil, &ResponseDecodeError{Raw: []byte(t.Props[0].Value), Err: err}
	}

	var result *TexturesProp
	if err := json.Unmarshal(jsonStr, &result); err != nil {
		return nil, &ResponseDecodeError{Raw: jsonStr, Err: err}
	}

	return result, nil
}

func errorFromResponse(response *http.Response) error {
	switch {
	case response.StatusCode == 429:
		return &TooManyRequestsError{}
	case response.StatusCode >= 500:
		return &ServerError{Status: response.StatusCode}
	}

	return &UnexpectedResponseError{Status: response.StatusCode}
}

// ProfileNotFoundError means Mojang knows no profile for the requested
// username or uuid.
type ProfileNotFoundError struct {
	Who string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("no Mojang profile for %q", e.Who)
}

// When you exceed the set limit of requests, this error will be returned
type TooManyRequestsError struct {
}

func (*TooManyRequestsError) Error() string {
	return "429: Too Many Requests"
}

// ServerError happens when Mojang's API returns any response with 50* status
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, "Server error")
}

// UnexpectedResponseError covers the remaining non-success status codes.
type UnexpectedResponseError struct {
	Status int
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected response status code: %d", e.Status)
}

// ResponseDecodeError signals a response payload that could not be parsed.
// Raw carries the offending bytes for diagnostics.
type ResponseDecodeError struct {
	Raw []byte
	Err error
}

func (e *ResponseDecodeError) Error() string {
	return fmt.Sprintf("unable to decode Mojang response: %v", e.Err)
}

func (e *ResponseDecodeError) Unwrap() error {
	return e.Err
}
