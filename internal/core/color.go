package core

// Color is the semantic role of a screen cell. Front ends map roles to
// concrete terminal colors.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWord          // untouched word text
	ColorTyped         // prefix already typed on the highlighted word
	ColorTracked       // rest of the highlighted word
	ColorPowerUp       // power-up word
	ColorTarget        // the point words travel toward
	ColorShield        // target while a shield is armed
	ColorFrozen        // words while freeze is active
	ColorSlowed        // words while slow is active
	ColorWarning       // words close to arrival
	ColorDim           // borders and hints
)
