package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/keypad-lock/internal/logic"
	"github.com/sweeney/keypad-lock/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"stateOrUnknown": func(s string) string {
		if s == "" {
			return "UNKNOWN"
		}
		return s
	},
	// dots renders the buffer fill as filled/empty circles, never the digits.
	"dots": func(fill, total int) string {
		out := make([]rune, 0, total)
		for i := 0; i < total; i++ {
			if i < fill {
				out = append(out, '●')
			} else {
				out = append(out, '○')
			}
		}
		return string(out)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="5">
<title>Keypad Lock</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.locked { color: #b00; font-weight: bold; }
.waiting { color: green; font-weight: bold; }
.unknown { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Keypad Lock</h1>

<h2>Lock</h2>
<table>
<tr><th>State</th><td id="lock-state" class="{{if eq (stateOrUnknown (printf "%s" .State)) "LOCKED"}}locked{{else if eq (stateOrUnknown (printf "%s" .State)) "WAITING"}}waiting{{else}}unknown{{end}}">{{stateOrUnknown (printf "%s" .State)}}</td></tr>
<tr><th>Indicator</th><td>{{if .Indicator}}ON{{else}}OFF{{end}}</td></tr>
<tr><th>Entered</th><td>{{dots .Fill .Length}}</td></tr>
<tr><th>Ready</th><td>{{if .Ready}}yes{{else}}no{{end}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}}, {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Digits entered</th><td>{{.Counts.Digits}}</td></tr>
<tr><th>Digits dropped</th><td>{{.Counts.Dropped}}</td></tr>
<tr><th>Correct</th><td>{{.Counts.Correct}}</td></tr>
<tr><th>Incorrect</th><td>{{.Counts.Incorrect}}</td></tr>
<tr><th>Resets</th><td>{{.Counts.Resets}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Boot</th><td>{{.BootID}}</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>Pins</th><td>{{.Config.Chip}} buttons {{.Config.Buttons}} led {{.Config.LED}}{{if .Config.ActiveLow}} (active low){{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) error {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
		Length int
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
		Length:   logic.PasswordLength,
	}
	return indexTmpl.Execute(w, data)
}
