package locale

// Navigator performs a client-side navigation to a console route, such as
// the one returned by Config.LoginRoute.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts an ordinary function to the Navigator interface.
type NavigatorFunc func(route string)

// Navigate calls f(route).
func (f NavigatorFunc) Navigate(route string) {
	f(route)
}
