package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	dir, err := ParseDirection("ja-zh")
	require.NoError(t, err)
	assert.Equal(t, JaToZhHant, dir)

	dir, err = ParseDirection("en-zh")
	require.NoError(t, err)
	assert.Equal(t, EnToZhHant, dir)

	_, err = ParseDirection("fr-zh")
	assert.Error(t, err)
}

func TestDirection_Keys(t *testing.T) {
	assert.Equal(t, "jp", JaToZhHant.SourceKey())
	assert.Equal(t, "en", EnToZhHant.SourceKey())
	assert.Equal(t, "zh", JaToZhHant.TargetKey())
	assert.True(t, JaToZhHant.SoundEnabled())
	assert.False(t, EnToZhHant.SoundEnabled())
}

func TestDirection_Residue(t *testing.T) {
	assert.True(t, JaToZhHant.Residue("還殘留かな"))
	assert.True(t, JaToZhHant.Residue("殘留 ab"))
	assert.False(t, JaToZhHant.Residue("完全翻譯"))
	assert.True(t, EnToZhHant.Residue("partially 翻譯"))
	assert.False(t, EnToZhHant.Residue("完全翻譯"))
}

func TestDirection_ValidTerms(t *testing.T) {
	assert.True(t, JaToZhHant.ValidSourceTerm("さくら"))
	assert.True(t, JaToZhHant.ValidSourceTerm("山田"))
	assert.False(t, JaToZhHant.ValidSourceTerm("Sakura"))
	assert.True(t, EnToZhHant.ValidSourceTerm("Sakura"))

	assert.True(t, JaToZhHant.ValidTargetTerm("櫻"))
	assert.False(t, JaToZhHant.ValidTargetTerm("Sakura"))
	assert.False(t, JaToZhHant.ValidTargetTerm("櫻さくら"))
}

func TestDetectDirection(t *testing.T) {
	ja := []string{"今日はいい天気ですね", "学校に行きます", "ありがとうございました"}
	assert.Equal(t, JaToZhHant, DetectDirection(ja))

	en := []string{"The weather is nice today", "I am going to school", "Thank you very much"}
	assert.Equal(t, EnToZhHant, DetectDirection(en))

	assert.Equal(t, EnToZhHant, DetectDirection(nil))
}
