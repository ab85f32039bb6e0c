package glprog

// Debug enables extra checks when set:
//
//   - Link panics if shaders are already attached to the native program, which
//     means a previous link did not complete.
//   - Link validates the program after a successful link and returns a
//     *ValidationError if validation fails.
//
// It must be set before any program is linked.
//
var Debug = false
