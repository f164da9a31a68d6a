package encoding

// Encoder turns user-provided data into its hex representation.
type Encoder interface {
	Encode([]byte) ([]byte, error)
}

// Decoder reads a hex representation and turns it back into the original data.
type Decoder interface {
	Decode([]byte) ([]byte, error)
}

// Codec converts in both directions.
type Codec interface {
	Encoder
	Decoder
}
