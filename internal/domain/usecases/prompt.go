package usecases

import (
	"fmt"
	"strings"

	"github.com/0xcro3dile/memurbot-go/internal/domain/entities"
)

// Language selects the wording of the escalation prompt.
type Language string

const (
	LanguageTurkish Language = "tr"
	LanguageEnglish Language = "en"
)

type promptTemplate struct {
	intro       string
	question    string
	answer      string
	userQuery   string
	instruction string
}

var promptTemplates = map[Language]promptTemplate{
	LanguageTurkish: {
		intro:     "Aşağıda okul ile ilgili sık sorulan sorular ve cevapları var:",
		question:  "Soru",
		answer:    "Cevap",
		userQuery: "Kullanıcıdan gelen yeni soru",
		instruction: `Yapman gereken:
- Kullanıcı sorusunu dikkatlice analiz et.
- Eğer yukarıdaki sorulardan biriyle çok benzerse, o sorunun cevabını aynen döndür.
- Eğer tam olarak eşleşmiyorsa ama mantıksal olarak en yakın cevabı seç.
- Eğer cevap bulamadıysan, bilmediğini söyle.
- Eğer sorulan soru çok genelse, yukarıdaki soruların cevaplarıyla genel bir cevap ver. Verdiğin cevap maksimum 2 cümleden oluşsun.
- Eğer hiçbir cevap uygun değilse, hangi konularda yardımcı olabileceğini ve isterlerse okul idaresiyle görüşebileceklerini anlatan bir yazı yaz. Yazı maksimum 2 cümle olsun, ekstra bilgi verme. Eğer kişisel bir soruysa kişisel bilgileri paylaşamayacağını söyle.

Sadece en uygun cevabı döndür, giriş cümlesi ekleme.`,
	},
	LanguageEnglish: {
		intro:     "Below are frequently asked questions about the school and their answers:",
		question:  "Question",
		answer:    "Answer",
		userQuery: "New question from the user",
		instruction: `What to do:
- Analyze the user's question carefully.
- If it is very similar to one of the questions above, return that question's answer verbatim.
- If it does not match exactly, choose the answer that is logically closest.
- If you cannot find an answer, say that you do not know.
- If the question is very broad, give a general answer built from the answers above, at most 2 sentences.
- If no answer fits, write at most 2 sentences describing which topics you can help with and suggesting the user contact the school administration. Give no extra information. If the question asks for personal information, say that you cannot share personal information.

Return only the final answer, with no preamble.`,
	},
}

// BuildPrompt renders every pair, the literal query and the instruction block.
// Unknown languages fall back to Turkish.
func BuildPrompt(lang Language, query string, base entities.KnowledgeBase) string {
	tpl, ok := promptTemplates[lang]
	if !ok {
		tpl = promptTemplates[LanguageTurkish]
	}

	var sb strings.Builder
	sb.WriteString(tpl.intro)
	sb.WriteString("\n")
	for i := 0; i < base.Len(); i++ {
		p := base.Pair(i)
		fmt.Fprintf(&sb, "%s: %s\n%s: %s\n", tpl.question, p.Question, tpl.answer, p.Answer)
	}
	fmt.Fprintf(&sb, "\n%s: %q\n\n", tpl.userQuery, query)
	sb.WriteString(tpl.instruction)
	sb.WriteString("\n")
	return sb.String()
}
