package wiki

import "testing"

const impPage = `<div class="mw-parser-output">
<table id="character-details"><tbody>
<tr><td>Type</td><td><a href="/Character_Types#Demon" title="Character Types">Demon</a></td></tr>
</tbody></table>
<div class="summary"><p>"Each night*, choose a <a href="/Player">player</a>: they die. If you kill yourself this way, a Minion becomes the Imp."</p></div>
<div class="flavour">
  We must keep our wits sharp
  and our sword sharper.
</div>
</div>`

const loricPage = `<div class="mw-parser-output">
<p>Category stuff that should be skipped because it is long</p>
<p>short</p>
<p>If the Storyteller wishes, players can hear the Big Wig speak.</p>
<table><tbody><tr><td> Type </td><td>Loric</td></tr></tbody></table>
</div>`

const tdLinkPage = `<table><tr><td>Character</td><td><a href="/Character_Types#Travellers">Traveller</a></td></tr></table>
<div class="summary other"><p>Each night, choose a player (not yourself).</p></div>`

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		wantRule   string
		wantFlavor string
		wantType   string
	}{
		{
			name:       "summary box and details table",
			page:       impPage,
			wantRule:   `"Each night*, choose a player: they die. If you kill yourself this way, a Minion becomes the Imp."`,
			wantFlavor: "We must keep our wits sharp and our sword sharper.",
			wantType:   "Demon",
		},
		{
			name:       "plain text type row and paragraph fallback",
			page:       loricPage,
			wantRule:   "If the Storyteller wishes, players can hear the Big Wig speak.",
			wantFlavor: Missing,
			wantType:   "Loric",
		},
		{
			name:       "type link in any cell",
			page:       tdLinkPage,
			wantRule:   "Each night, choose a player (not yourself).",
			wantFlavor: Missing,
			wantType:   "Traveller",
		},
		{
			name:       "empty page",
			page:       "",
			wantRule:   Missing,
			wantFlavor: Missing,
			wantType:   UnknownType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := Extract("Imp", "https://wiki/Imp", tt.page)
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if row.Name != "Imp" || row.Link != "https://wiki/Imp" {
				t.Errorf("name/link = %q/%q", row.Name, row.Link)
			}
			if row.Rule != tt.wantRule {
				t.Errorf("Rule = %q, want %q", row.Rule, tt.wantRule)
			}
			if row.Flavor != tt.wantFlavor {
				t.Errorf("Flavor = %q, want %q", row.Flavor, tt.wantFlavor)
			}
			if row.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", row.Type, tt.wantType)
			}
		})
	}
}
