// Package prompt renders the fixed summarization template.
//
// The bracketed section headers below are a hard contract with the
// marker-based extractor: changing either side requires changing both in
// lockstep.
package prompt

import "strings"

// Section headers the model is instructed to emit, and the extractor scans for.
const (
	SectionPurpose     = "【通話の目的】"
	SectionKeyPoints   = "【重要なポイント】"
	SectionIssueStatus = "【問題の状況】"
	SectionActionItems = "【アクションアイテム】"
	SectionSentiment   = "【顧客感情】"
)

const placeholder = "{conversation}"

const template = `
以下の通話内容を日本語で要約してください。要約には以下の情報を含めてください：

1. 通話の主な目的
2. 重要なポイント（3-5個）
3. 解決された問題または未解決の問題
4. 次のアクションアイテム（もしあれば）
5. 全体的な顧客の感情（ポジティブ/ニュートラル/ネガティブ）

出力形式:
` + SectionPurpose + `
（ここに記載）

` + SectionKeyPoints + `
• ポイント1
• ポイント2
• ポイント3

` + SectionIssueStatus + `
（解決済み/未解決の問題を記載）

` + SectionActionItems + `
• アクション1
• アクション2

` + SectionSentiment + `
（感情とその理由）

通話内容：
` + placeholder + `

要約：`

// Build substitutes the conversation text into the template. Conversation
// length is not validated here; truncation is a model-side concern.
func Build(conversation string) string {
	return strings.Replace(template, placeholder, conversation, 1)
}
