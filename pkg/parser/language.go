package parser

import "regexp"

// Language is a simple-language code. UI code keys display strings off these
// exact values.
type Language string

const (
	LangEnglish    Language = "S_LANG_EN"
	LangChinese    Language = "S_LANG_ZH"
	LangSpanish    Language = "S_LANG_ES"
	LangKorean     Language = "S_LANG_KO"
	LangRussian    Language = "S_LANG_RU"
	LangFrench     Language = "S_LANG_FR"
	LangPortuguese Language = "S_LANG_PT"
	LangThai       Language = "S_LANG_TH"
	LangGerman     Language = "S_LANG_DE"
	LangItalian    Language = "S_LANG_IT"
	LangVietnamese Language = "S_LANG_VI"
	LangPolish     Language = "S_LANG_PL"
	LangHungarian  Language = "S_LANG_HU"
	LangDutch      Language = "S_LANG_NL"
)

type languageEntry struct {
	code    Language
	tag     string
	pattern *regexp.Regexp
}

// Order matters: title detection stops at the first matching pattern.
var languageTable = []languageEntry{
	{LangEnglish, "language:english", regexp.MustCompile(`(?i)[(\[]eng(?:lish)?[)\]]|英訳`)},
	{LangChinese, "language:chinese", regexp.MustCompile(`(?i)[(\x{FF08}\[]ch(?:inese)?[)\x{FF09}\]]|[汉漢]化|中[国國][语語]|中文|中国翻訳`)},
	{LangSpanish, "language:spanish", regexp.MustCompile(`(?i)[(\[]spanish[)\]]|[(\[]Español[)\]]|スペイン翻訳`)},
	{LangKorean, "language:korean", regexp.MustCompile(`(?i)[(\[]korean?[)\]]|韓国翻訳`)},
	{LangRussian, "language:russian", regexp.MustCompile(`(?i)[(\[]rus(?:sian)?[)\]]|ロシア翻訳`)},
	{LangFrench, "language:french", regexp.MustCompile(`(?i)[(\[]fr(?:ench)?[)\]]|フランス翻訳`)},
	{LangPortuguese, "language:portuguese", regexp.MustCompile(`(?i)[(\[]portuguese|ポルトガル翻訳`)},
	{LangThai, "language:thai", regexp.MustCompile(`(?i)[(\[]thai(?: ภาษาไทย)?[)\]]|แปลไทย|タイ翻訳`)},
	{LangGerman, "language:german", regexp.MustCompile(`(?i)[(\[]german[)\]]|ドイツ翻訳`)},
	{LangItalian, "language:italian", regexp.MustCompile(`(?i)[(\[]italiano?[)\]]|イタリア翻訳`)},
	{LangVietnamese, "language:vietnamese", regexp.MustCompile(`(?i)[(\[]vietnamese(?: Tiếng Việt)?[)\]]|ベトナム翻訳`)},
	{LangPolish, "language:polish", regexp.MustCompile(`(?i)[(\[]polish[)\]]|ポーランド翻訳`)},
	{LangHungarian, "language:hungarian", regexp.MustCompile(`(?i)[(\[]hun(?:garian)?[)\]]|ハンガリー翻訳`)},
	{LangDutch, "language:dutch", regexp.MustCompile(`(?i)[(\[]dutch[)\]]|オランダ翻訳`)},
}

// LanguageFromTags returns the language of the first simple tag, in
// document order, found in the language tag table.
func LanguageFromTags(tags []string) (Language, bool) {
	for _, t := range tags {
		for _, e := range languageTable {
			if t == e.tag {
				return e.code, true
			}
		}
	}
	return "", false
}

// LanguageFromTitle tries the title patterns in table order.
func LanguageFromTitle(title string) (Language, bool) {
	for _, e := range languageTable {
		if e.pattern.MatchString(title) {
			return e.code, true
		}
	}
	return "", false
}
