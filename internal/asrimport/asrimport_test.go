package asrimport_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/jamesohortle/japanese-utilities/internal/asrimport"
	"github.com/jamesohortle/japanese-utilities/internal/store"
)

const juliusStream = `<STARTPROC/>
.
<INPUT STATUS="LISTEN" TIME="1600000000"/>
.
<INPUT STATUS="STARTREC" TIME="1600000001"/>
.
<STARTRECOG/>
.
<ENDRECOG/>
.
<INPUTPARAM FRAMES="212" MSEC="2120"/>
.
<RECOGOUT>
  <SHYPO RANK="1" SCORE="-5012.4">
    <WHYPO WORD="" CLASSID="<s>" PHONE="silB" CM="0.000"/>
    <WHYPO WORD="今日" CLASSID="今日+名詞" PHONE="ky o u" CM="0.912"/>
    <WHYPO WORD="は" CLASSID="は+助詞" PHONE="w a" CM="0.877"/>
    <WHYPO WORD="晴れ" CLASSID="晴れ+名詞" PHONE="h a r e" CM="0.701"/>
    <WHYPO WORD="です" CLASSID="です+助動詞" PHONE="d e s u" CM="0.990"/>
    <WHYPO WORD="" CLASSID="</s>" PHONE="silE" CM="1.000"/>
  </SHYPO>
  <SHYPO RANK="2" SCORE="-5020.0">
    <WHYPO WORD="京" CLASSID="京+名詞" PHONE="ky o u" CM="0.100"/>
  </SHYPO>
</RECOGOUT>
.
<INPUT STATUS="LISTEN" TIME="1600000005"/>
.
<RECOGFAIL/>
.
<INPUT STATUS="LISTEN" TIME="1600000009"/>
.
<RECOGOUT>
  <SHYPO RANK="1" SCORE="-3000.0">
    <WHYPO WORD="雨" CLASSID="雨+名詞" PHONE="a m e" CM="0.800"/>
  </SHYPO>
</RECOGOUT>
.
`

func TestReadJulius(t *testing.T) {
	got, err := asrimport.ReadJulius(strings.NewReader(juliusStream))
	if err != nil {
		t.Fatalf("ReadJulius: %v", err)
	}
	want := []string{"今日は晴れです", "", "雨"}
	if !slices.Equal(got, want) {
		t.Fatalf("ReadJulius = %q, want %q", got, want)
	}
}

func TestParseJuliusBlock(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  string
	}{
		{"empty", "", ""},
		{"no recogout", "<INPUT STATUS=\"LISTEN\" TIME=\"1\"/>\n.\n", ""},
		{"rank two only", "<RECOGOUT><SHYPO RANK=\"2\"><WHYPO WORD=\"x\"/></SHYPO></RECOGOUT>", ""},
		{"class ids", "<RECOGOUT><SHYPO RANK=\"1\"><WHYPO WORD=\"\" CLASSID=\"<s>\"/><WHYPO WORD=\"雨\"/><WHYPO WORD=\"\" CLASSID=\"</s>\"/></SHYPO></RECOGOUT>", "雨"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := asrimport.ParseJuliusBlock(tt.block)
			if err != nil {
				t.Fatalf("ParseJuliusBlock: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestParseJuliusBlockRejectsBrokenXML(t *testing.T) {
	if _, err := asrimport.ParseJuliusBlock("<RECOGOUT><SHYPO RANK=\"1\">"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestReadTSV(t *testing.T) {
	input := "split/001.wav\t今日は晴れです\r\n\nsplit/002.wav\nsplit/003.wav\t明日は\t雨です\n"
	got, err := asrimport.ReadTSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTSV: %v", err)
	}
	want := []store.Transcription{
		{Path: "split/001.wav", Text: "今日は晴れです"},
		{Path: "split/002.wav", Text: ""},
		{Path: "split/003.wav", Text: "明日は\t雨です"},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("ReadTSV = %+v, want %+v", got, want)
	}
}

func TestReadTSVRejectsEmptyPath(t *testing.T) {
	if _, err := asrimport.ReadTSV(strings.NewReader("\torphan text\n")); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestPair(t *testing.T) {
	got, dropped := asrimport.Pair([]string{"a.wav", "b.wav", "c.wav"}, []string{"一", "二"})
	want := []store.Transcription{{Path: "a.wav", Text: "一"}, {Path: "b.wav", Text: "二"}}
	if !slices.Equal(got, want) || dropped != 1 {
		t.Fatalf("Pair = %+v dropped=%d", got, dropped)
	}
}

func TestReadFileList(t *testing.T) {
	got, err := asrimport.ReadFileList(strings.NewReader("  a.wav \n\nb.wav\n"))
	if err != nil {
		t.Fatalf("ReadFileList: %v", err)
	}
	if !slices.Equal(got, []string{"a.wav", "b.wav"}) {
		t.Fatalf("ReadFileList = %q", got)
	}
}
