package transformer

type Transformer interface {
	Transform(data []byte, config Config) ([]byte, error)
}
