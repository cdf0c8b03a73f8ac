package math

// MatrixStack is a push/pop stack of matrices whose top is the current one.
type MatrixStack struct {
	stack []Mat4
}

// NewMatrixStack returns a stack holding the identity.
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{stack: []Mat4{Identity()}}
}

// Top returns the current matrix.
func (s *MatrixStack) Top() Mat4 {
	return s.stack[len(s.stack)-1]
}

// Load replaces the current matrix.
func (s *MatrixStack) Load(m Mat4) {
	s.stack[len(s.stack)-1] = m
}

// Mul post-multiplies the current matrix by m.
func (s *MatrixStack) Mul(m Mat4) {
	s.stack[len(s.stack)-1] = s.Top().Mul(m)
}

// Push duplicates the current matrix.
func (s *MatrixStack) Push() {
	s.stack = append(s.stack, s.Top())
}

// Pop discards the current matrix. It reports false and leaves the stack
// alone when only the base matrix remains.
func (s *MatrixStack) Pop() bool {
	if len(s.stack) == 1 {
		return false
	}
	s.stack = s.stack[:len(s.stack)-1]
	return true
}

// Depth returns the number of matrices on the stack.
func (s *MatrixStack) Depth() int {
	return len(s.stack)
}

// Reset drops everything above the base and loads the identity.
func (s *MatrixStack) Reset() {
	s.stack = s.stack[:1]
	s.stack[0] = Identity()
}
