// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	slice3l9cQArv0k3GRpd9Σbn1BgΞΞ = ord.NewSliceSer[float32](varint.Float32)
	sliceGxCPhΔwhqBioSD4PHJ6v9gΞΞ = ord.NewSliceSer[string](ord.String)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var BBoxMUS = bBoxMUS{}

type bBoxMUS struct{}

func (s bBoxMUS) Marshal(v BBox, bs []byte) (n int) {
	n = varint.Float32.Marshal(v.X, bs)
	n += varint.Float32.Marshal(v.Y, bs[n:])
	n += varint.Float32.Marshal(v.W, bs[n:])
	return n + varint.Float32.Marshal(v.H, bs[n:])
}

func (s bBoxMUS) Unmarshal(bs []byte) (v BBox, n int, err error) {
	v.X, n, err = varint.Float32.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Y, n1, err = varint.Float32.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.W, n1, err = varint.Float32.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.H, n1, err = varint.Float32.Unmarshal(bs[n:])
	n += n1
	return
}

func (s bBoxMUS) Size(v BBox) (size int) {
	size = varint.Float32.Size(v.X)
	size += varint.Float32.Size(v.Y)
	size += varint.Float32.Size(v.W)
	return size + varint.Float32.Size(v.H)
}

func (s bBoxMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Float32.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Float32.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float32.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float32.Skip(bs[n:])
	n += n1
	return
}

var DetectionDetailsMUS = detectionDetailsMUS{}

type detectionDetailsMUS struct{}

func (s detectionDetailsMUS) Marshal(v DetectionDetails, bs []byte) (n int) {
	n = ord.String.Marshal(v.Age, bs)
	n += ord.String.Marshal(v.Clothing, bs[n:])
	n += ord.String.Marshal(v.Environment, bs[n:])
	n += ord.String.Marshal(v.Movement, bs[n:])
	return n + sliceGxCPhΔwhqBioSD4PHJ6v9gΞΞ.Marshal(v.DistinctiveFeatures, bs[n:])
}

func (s detectionDetailsMUS) Unmarshal(bs []byte) (v DetectionDetails, n int, err error) {
	v.Age, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Clothing, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Environment, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Movement, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DistinctiveFeatures, n1, err = sliceGxCPhΔwhqBioSD4PHJ6v9gΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s detectionDetailsMUS) Size(v DetectionDetails) (size int) {
	size = ord.String.Size(v.Age)
	size += ord.String.Size(v.Clothing)
	size += ord.String.Size(v.Environment)
	size += ord.String.Size(v.Movement)
	return size + sliceGxCPhΔwhqBioSD4PHJ6v9gΞΞ.Size(v.DistinctiveFeatures)
}

func (s detectionDetailsMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceGxCPhΔwhqBioSD4PHJ6v9gΞΞ.Skip(bs[n:])
	n += n1
	return
}

var DetectionMUS = detectionMUS{}

type detectionMUS struct{}

func (s detectionMUS) Marshal(v Detection, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.CameraId, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.Timestamp, bs[n:])
	n += BBoxMUS.Marshal(v.BBox, bs[n:])
	n += varint.Float32.Marshal(v.Confidence, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += DetectionDetailsMUS.Marshal(v.Details, bs[n:])
	n += slice3l9cQArv0k3GRpd9Σbn1BgΞΞ.Marshal(v.Embedding, bs[n:])
	n += varint.Float32.Marshal(v.MatchScore, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s detectionMUS) Unmarshal(bs []byte) (v Detection, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.CameraId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.BBox, n1, err = BBoxMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Confidence, n1, err = varint.Float32.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Details, n1, err = DetectionDetailsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Embedding, n1, err = slice3l9cQArv0k3GRpd9Σbn1BgΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.MatchScore, n1, err = varint.Float32.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s detectionMUS) Size(v Detection) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.CameraId)
	size += raw.TimeUnixMicro.Size(v.Timestamp)
	size += BBoxMUS.Size(v.BBox)
	size += varint.Float32.Size(v.Confidence)
	size += ord.String.Size(v.Description)
	size += DetectionDetailsMUS.Size(v.Details)
	size += slice3l9cQArv0k3GRpd9Σbn1BgΞΞ.Size(v.Embedding)
	size += varint.Float32.Size(v.MatchScore)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s detectionMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = BBoxMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float32.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = DetectionDetailsMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slice3l9cQArv0k3GRpd9Σbn1BgΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float32.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var CameraMUS = cameraMUS{}

type cameraMUS struct{}

func (s cameraMUS) Marshal(v Camera, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Location, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.LastActive, bs[n:])
	n += ord.String.Marshal(v.Type, bs[n:])
	n += ord.String.Marshal(v.Status, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s cameraMUS) Unmarshal(bs []byte) (v Camera, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Location, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastActive, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Type, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s cameraMUS) Size(v Camera) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Location)
	size += raw.TimeUnixMicro.Size(v.LastActive)
	size += ord.String.Size(v.Type)
	size += ord.String.Size(v.Status)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s cameraMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
