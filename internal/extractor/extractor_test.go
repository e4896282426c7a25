package extractor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const fullSummary = `【通話の目的】
請求金額についての問い合わせ

【重要なポイント】
• 二重請求が発生していた
• 返金は5営業日以内に処理される
- 顧客はメールでの確認を希望

【問題の状況】
解決済み

【アクションアイテム】
• 返金処理を開始する
• 確認メールを送付する

【顧客感情】
ネガティブから改善`

func TestExtract_BothSections(t *testing.T) {
	keyPoints, actionItems := Marker{}.Extract(fullSummary)

	wantKeyPoints := []string{
		"二重請求が発生していた",
		"返金は5営業日以内に処理される",
		"顧客はメールでの確認を希望",
	}
	if diff := cmp.Diff(wantKeyPoints, keyPoints); diff != "" {
		t.Errorf("key points mismatch (-want +got):\n%s", diff)
	}

	wantActions := []string{"返金処理を開始する", "確認メールを送付する"}
	if diff := cmp.Diff(wantActions, actionItems); diff != "" {
		t.Errorf("action items mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_MissingActionSection(t *testing.T) {
	raw := `【重要なポイント】
• ポイント1
• ポイント2
`
	keyPoints, actionItems := Marker{}.Extract(raw)

	if len(keyPoints) != 2 {
		t.Fatalf("expected 2 key points, got %d", len(keyPoints))
	}
	// Absent, not empty: downstream flagging depends on the distinction.
	if actionItems != nil {
		t.Errorf("expected nil action items, got %v", actionItems)
	}
}

func TestExtract_SectionWithoutBullets(t *testing.T) {
	raw := `【重要なポイント】
特になし

【アクションアイテム】
なし`
	keyPoints, actionItems := Marker{}.Extract(raw)

	if keyPoints != nil {
		t.Errorf("expected nil key points for bulletless section, got %v", keyPoints)
	}
	if actionItems != nil {
		t.Errorf("expected nil action items for bulletless section, got %v", actionItems)
	}
}

func TestExtract_NoSections(t *testing.T) {
	keyPoints, actionItems := Marker{}.Extract("ただの要約テキストです。")

	if keyPoints != nil || actionItems != nil {
		t.Errorf("expected nothing extracted, got %v / %v", keyPoints, actionItems)
	}
}

func TestExtract_SectionAtEndOfText(t *testing.T) {
	raw := `前置き
【アクションアイテム】
- フォローアップの電話をする`
	_, actionItems := Marker{}.Extract(raw)

	want := []string{"フォローアップの電話をする"}
	if diff := cmp.Diff(want, actionItems); diff != "" {
		t.Errorf("action items mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_StopsAtNextHeader(t *testing.T) {
	raw := `【重要なポイント】
• 本物のポイント
【問題の状況】
• これはポイントではない`
	keyPoints, _ := Marker{}.Extract(raw)

	want := []string{"本物のポイント"}
	if diff := cmp.Diff(want, keyPoints); diff != "" {
		t.Errorf("key points mismatch (-want +got):\n%s", diff)
	}
}
