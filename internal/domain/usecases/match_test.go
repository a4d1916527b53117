package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/memurbot-go/internal/domain/entities"
)

func TestRatio_Bounds(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("abc", "abc"))
	assert.Equal(t, 0.0, Ratio("abc", "xyz"))
	assert.Equal(t, 1.0, Ratio("", ""))
	assert.Equal(t, 0.0, Ratio("abc", ""))
}

func TestRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"okul kayıtları ne zaman", "kayıt ne zaman başlıyor"},
		{"abcdefghij", "abcdefgxyz"},
		{"devamsızlık", "devam"},
	}
	for _, p := range pairs {
		assert.Equal(t, Ratio(p[0], p[1]), Ratio(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestRatio_GrowsWithSharedSubsequence(t *testing.T) {
	base := "abcdefghij"
	prev := -1.0
	for _, other := range []string{"zzzzzzzzzz", "azzzzzzzzz", "abzzzzzzzz", "abczzzzzzz", "abcdefghij"} {
		r := Ratio(base, other)
		assert.Greater(t, r, prev, other)
		prev = r
	}
}

func TestRatio_CountsRunesNotBytes(t *testing.T) {
	// 26 shared runes out of 27+26.
	r := Ratio("devamsızlık hakkım kaç gün?", "devamsızlık hakkım kaç gün")
	assert.InDelta(t, 52.0/53.0, r, 1e-12)
}

func TestBestMatch_EmptyBase(t *testing.T) {
	m := NewSimilarityMatcher()
	res := m.BestMatch("anything", entities.KnowledgeBase{})
	assert.Nil(t, res.Pair)
	assert.Equal(t, 0.0, res.Score)
}

func TestBestMatch_ExactAfterNormalization(t *testing.T) {
	base := entities.NewKnowledgeBase([]entities.QAPair{
		{Question: "Okul kayıtları ne zaman başlıyor?", Answer: "Ağustos"},
		{Question: "  Devamsızlık hakkım kaç gün?  ", Answer: "10 gün"},
	})
	res := NewSimilarityMatcher().BestMatch("  devamsızlık HAKKıM kaç gün?  ", base)
	require.NotNil(t, res.Pair)
	assert.Equal(t, "10 gün", res.Pair.Answer)
	assert.Equal(t, 1.0, res.Score)
}

func TestBestMatch_TurkishCaseFolding(t *testing.T) {
	base := entities.NewKnowledgeBase([]entities.QAPair{
		{Question: "Devamsızlık hakkım kaç gün?", Answer: "10 gün"},
		{Question: "İzin dilekçesi nereye verilir?", Answer: "Müdürlüğe"},
	})
	m := NewSimilarityMatcher()

	res := m.BestMatch("DEVAMSIZLIK HAKKIM KAÇ GÜN?", base)
	require.NotNil(t, res.Pair)
	assert.Equal(t, "10 gün", res.Pair.Answer)
	assert.Equal(t, 1.0, res.Score)

	res = m.BestMatch("İZİN DİLEKÇESİ NEREYE VERİLİR?", base)
	require.NotNil(t, res.Pair)
	assert.Equal(t, "Müdürlüğe", res.Pair.Answer)
	assert.Equal(t, 1.0, res.Score)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ılık", normalize("  ILIK "))
	assert.Equal(t, "iyi", normalize("İYİ"))
	assert.Equal(t, "kaç gün", normalize("KAÇ GÜN"))
}

func TestBestMatch_TieKeepsFirst(t *testing.T) {
	base := entities.NewKnowledgeBase([]entities.QAPair{
		{Question: "kayıt tarihi", Answer: "first"},
		{Question: "kayıt tarihi", Answer: "second"},
	})
	res := NewSimilarityMatcher().BestMatch("kayıt tarihi nedir", base)
	require.NotNil(t, res.Pair)
	assert.Equal(t, "first", res.Pair.Answer)
}

func TestBestMatch_ScoreInRange(t *testing.T) {
	base := entities.NewKnowledgeBase([]entities.QAPair{
		{Question: "a", Answer: "1"},
		{Question: "çok uzun bir soru metni", Answer: "2"},
		{Question: "", Answer: "3"},
	})
	for _, q := range []string{"", "a", "zzz", "soru", "çok uzun bir soru metni"} {
		res := NewSimilarityMatcher().BestMatch(q, base)
		assert.GreaterOrEqual(t, res.Score, 0.0)
		assert.LessOrEqual(t, res.Score, 1.0)
	}
}

func TestBestMatch_DisjointScoresZero(t *testing.T) {
	base := entities.NewKnowledgeBase([]entities.QAPair{{Question: "abc", Answer: "x"}})
	res := NewSimilarityMatcher().BestMatch("xyz", base)
	assert.Nil(t, res.Pair)
	assert.Equal(t, 0.0, res.Score)
}
