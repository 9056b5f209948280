package b

var Shared = 7

type Config struct {
	Name string
}
