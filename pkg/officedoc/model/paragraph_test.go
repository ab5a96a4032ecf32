package model

import "testing"

func TestTextRun_EmptyStyleMatchesZeroValue(t *testing.T) {
	a := TextRun{Text: "hello"}
	b := TextRun{Text: "hello", Style: TextStyle{}}

	if a.Style != b.Style {
		t.Error("an unset Style field should equal an explicit zero-value TextStyle")
	}
}

func TestListInfo_NumberIsOptional(t *testing.T) {
	bullet := ListInfo{ListType: ListBullet, Level: 0}
	if bullet.Number != nil {
		t.Error("a bullet list item should have no assigned Number")
	}

	n := 3
	numbered := ListInfo{ListType: ListNumbered, Level: 0, Number: &n}
	if numbered.Number == nil || *numbered.Number != 3 {
		t.Error("a numbered list item should carry its assigned Number")
	}
}
