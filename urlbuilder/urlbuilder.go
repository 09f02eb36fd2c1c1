package urlbuilder

// Builder resolves group/route pairs into URLs. Hosts use it to turn guard
// redirect targets into concrete links (login with return path, landing
// routes).
type Builder interface {
	Resolve(groupPath, route string, params map[string]any, query map[string]string) (string, error)
}
