package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xpanvictor/xarvis-voice/internal/config"
	"github.com/xpanvictor/xarvis-voice/pkg/Logger"
)

type fakeAPI struct {
	values map[string]string
	asked  []string
}

func (f *fakeAPI) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.asked = append(f.asked, aws.ToString(in.Name))
	if !aws.ToBool(in.WithDecryption) {
		return nil, errors.New("expected decryption")
	}
	v, ok := f.values[aws.ToString(in.Name)]
	if !ok {
		return nil, errors.New("ParameterNotFound")
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: in.Name, Value: aws.String(v)}}, nil
}

func TestGetParameter(t *testing.T) {
	c, err := New(&fakeAPI{values: map[string]string{"/voice/k": "v"}})
	require.NoError(t, err)

	v, err := c.GetParameter(context.Background(), " /voice/k ")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	_, err = c.GetParameter(context.Background(), "/voice/missing")
	assert.ErrorContains(t, err, "ParameterNotFound")

	_, err = c.GetParameter(context.Background(), "")
	assert.ErrorContains(t, err, "required")

	_, err = New(nil)
	assert.Error(t, err)
}

func TestResolveAPIKeys(t *testing.T) {
	api := &fakeAPI{values: map[string]string{
		"/voice/prod/openai_api_key":     "sk-from-ssm",
		"/voice/prod/elevenlabs_api_key": "xi-from-ssm",
	}}
	c, err := New(api)
	require.NoError(t, err)

	s := &config.Settings{}
	s.Voice.ElevenLabs.APIKey = "xi-from-config"
	ResolveAPIKeys(context.Background(), c, "/voice/prod", s, Logger.Nop())

	assert.Equal(t, "sk-from-ssm", s.Brain.OpenAI.APIKey)
	assert.Equal(t, "", s.Brain.Gemini.APIKey)
	assert.Equal(t, "xi-from-config", s.Voice.ElevenLabs.APIKey)
	assert.NotContains(t, api.asked, "/voice/prod/elevenlabs_api_key")
}
