package logic

// PasswordLength is the number of digits in a password.
const PasswordLength = 4

// EmptyDigit marks an unused slot in the PasswordBuffer.
const EmptyDigit uint8 = 0xFF

// secret is the fixed password: four presses of BTN0.
var secret = [PasswordLength]uint8{0, 0, 0, 0}

// Secret returns a copy of the fixed password.
func Secret() [PasswordLength]uint8 {
	return secret
}

// PasswordBuffer holds the digits entered since the last reset.
// Digits past PasswordLength are dropped, never shifted in.
type PasswordBuffer struct {
	digits [PasswordLength]uint8
	fill   int
}

// NewPasswordBuffer returns an empty buffer.
func NewPasswordBuffer() PasswordBuffer {
	var b PasswordBuffer
	b.Reset()
	return b
}

// Reset empties the buffer.
func (b *PasswordBuffer) Reset() {
	b.fill = 0
	for i := range b.digits {
		b.digits[i] = EmptyDigit
	}
}

// Append adds d to the buffer. It returns false and leaves the buffer
// untouched when the buffer is already full.
func (b *PasswordBuffer) Append(d uint8) bool {
	if b.fill >= PasswordLength {
		return false
	}
	b.digits[b.fill] = d
	b.fill++
	return true
}

// Fill returns the number of digits entered.
func (b *PasswordBuffer) Fill() int {
	return b.fill
}

// Full reports whether no more digits can be appended.
func (b *PasswordBuffer) Full() bool {
	return b.fill == PasswordLength
}

// Matches reports whether the buffer is full and equals want digit for digit.
func (b *PasswordBuffer) Matches(want [PasswordLength]uint8) bool {
	if !b.Full() {
		return false
	}
	for i := range want {
		if b.digits[i] != want[i] {
			return false
		}
	}
	return true
}
