package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsKana(t *testing.T) {
	assert.True(t, ContainsKana("こんにちは"))
	assert.True(t, ContainsKana("カタカナ"))
	assert.True(t, ContainsKana("漢字とかな"))
	assert.False(t, ContainsKana("漢字"))
	assert.False(t, ContainsKana("hello"))
	assert.False(t, ContainsKana(""))
}

func TestContainsJapanese_AcceptsKanjiOnly(t *testing.T) {
	assert.True(t, ContainsJapanese("山田"))
	assert.True(t, ContainsJapanese("さくら"))
	assert.False(t, ContainsJapanese("Sakura"))
}

func TestIsPureChinese(t *testing.T) {
	assert.True(t, IsPureChinese("你好"))
	assert.True(t, IsPureChinese("你好，世界！"))
	assert.True(t, IsPureChinese("天空　很藍"))
	assert.False(t, IsPureChinese("你好 world"))
	assert.False(t, IsPureChinese("こんにちは"))
	assert.False(t, IsPureChinese(""))
	assert.False(t, IsPureChinese("，。"))
}

func TestContainsLatinRun_IgnoresWebLiterals(t *testing.T) {
	assert.True(t, ContainsLatinRun("visit the castle", 3))
	assert.False(t, ContainsLatinRun("詳見 https://example.com/page", 3))
	assert.False(t, ContainsLatinRun("www.example.com", 3))
	assert.False(t, ContainsLatinRun("聯絡 someone@example.com", 3))
	assert.True(t, ContainsLatinRun("OK了", 2))
	assert.False(t, ContainsLatinRun("OK了", 3))
}

func TestContainsLowercaseRun(t *testing.T) {
	assert.True(t, ContainsLowercaseRun("the world", 3))
	assert.False(t, ContainsLowercaseRun("NASA發射", 3))
	assert.False(t, ContainsLowercaseRun("こんにちは", 3))
}
