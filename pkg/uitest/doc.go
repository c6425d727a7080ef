// Package uitest provides helpers for testing Bubble Tea models.
//
// Models whose Update returns their concrete type can be run with
// [NewTestModel] and read back with [FinalModel]:
//
//	tm := uitest.NewTestModel(t, m, uitest.Compact)
//	tm.Send(tea.KeyMsg{Type: tea.KeyRight})
//	uitest.WaitForText(t, tm, "2/5")
//	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
//	final := uitest.FinalModel(t, tm, time.Second)
//
// Rendered views are compared with ANSI sequences stripped, see [Plain].
// Styles can be checked with [AssertStyled].
package uitest
