// Package automation renders the AppleScript that drives the VPN client and
// runs it through osascript.
package automation

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"qc/internal/models"
	"qc/internal/result"
)

// The script returns 1 when it disconnected an active session and 0 when it
// connected.
const scriptTemplate = `set appName to {{quote .Application}}
set networkName to {{quote .Network}}
set vpnPassword to {{quote .Password}}
tell application appName to activate
tell application "System Events" to tell process appName
	repeat until window 1 exists
		delay 0.2
	end repeat
	if exists button "Disconnect" of window 1 then
		click button "Disconnect" of window 1
		return 1
	end if
	set value of text field 1 of combo box 1 of window 1 to networkName
	click button "Connect" of window 1
	repeat until window 2 exists
		delay 0.2
	end repeat
	keystroke vpnPassword
	click button "OK" of window 1
end tell
return 0
`

var tmpl = template.Must(template.New("connect").Funcs(template.FuncMap{
	"quote": quote,
}).Parse(scriptTemplate))

type Script struct {
	Source string
	secret string
}

// String is the source with the password masked, safe for logs.
func (s Script) String() string {
	return models.Redact(s.Source, s.secret)
}

type scriptParams struct {
	Application string
	Network     string
	Password    string
}

// Build renders the connect script. Values that cannot be embedded in an
// AppleScript string literal fail with KindCouldNotBuildScript.
func Build(application, password, network string) result.Result[Script] {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, scriptParams{
		Application: application,
		Network:     network,
		Password:    password,
	})
	if err != nil {
		return result.Fail[Script](models.NewScriptError(scriptTemplate, err))
	}
	return result.Ok(Script{Source: buf.String(), secret: password})
}

// quote renders s as an AppleScript string literal.
func quote(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("value is not valid UTF-8")
	}
	for _, r := range s {
		if r == '\t' {
			continue
		}
		if r < 0x20 || r == 0x7f {
			return "", fmt.Errorf("value contains control character %U", r)
		}
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\', '"':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String(), nil
}
