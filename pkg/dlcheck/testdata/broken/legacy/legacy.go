package legacy

type Raw struct {
	Buf []byte
}

func (r *Raw) Reset() { r.Buf = r.Buf[:0] }
