package handler

import (
	"bytes"
	"sync"
)

// responseBufferSize fits a typical record page without growing
const responseBufferSize = 2048

// bufferPool holds encode buffers for JSON responses
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer drops oversized buffers so one large import report does not pin memory
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*responseBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
