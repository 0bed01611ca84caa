package interfaces

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

type SchedulerInterface interface {
	Init()
	Stop()
}

// PrefsInterface is a persisted key-value string store, the client-side
// analog of player preferences.
type PrefsInterface interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Has(key string) bool
}
