//go:build onnx

package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/daulet/tokenizers"
	ort "github.com/yalue/onnxruntime_go"
)

// Input tensor names understood by onnxBackend, as produced by the
// HuggingFace ONNX exporter for sequence classification.
const (
	inputIDs      = "input_ids"
	attentionMask = "attention_mask"
	tokenTypeIDs  = "token_type_ids"
	logitsOutput  = "logits"
)

type onnxBackend struct {
	threads int
}

// NewBackend initializes the ONNX Runtime environment.
func NewBackend(opts Options) (Backend, error) {
	if opts.LibraryPath != "" {
		ort.SetSharedLibraryPath(opts.LibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("%w: init onnxruntime: %v", ErrUnavailable, err)
		}
	}
	return &onnxBackend{threads: opts.IntraOpThreads}, nil
}

func (b *onnxBackend) Name() string { return "onnxruntime" }

func (b *onnxBackend) Close() error {
	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}

func (b *onnxBackend) LoadTokenizer(dir string) (Tokenizer, error) {
	tk, err := tokenizers.FromFile(filepath.Join(dir, TokenizerFile))
	if err != nil {
		return nil, fmt.Errorf("tokenizer load: %w", err)
	}
	return &hfTokenizer{tk: tk}, nil
}

type hfTokenizer struct {
	tk *tokenizers.Tokenizer
}

func (t *hfTokenizer) Encode(text string) (Encoding, error) {
	enc := t.tk.EncodeWithOptions(text, true,
		tokenizers.WithReturnAttentionMask(),
		tokenizers.WithReturnTypeIDs(),
		tokenizers.WithReturnSpecialTokensMask(),
	)
	n := len(enc.IDs)
	out := Encoding{
		IDs:           make([]int64, n),
		AttentionMask: make([]int64, n),
		TypeIDs:       make([]int64, n),
		Special:       make([]bool, n),
	}
	for i, id := range enc.IDs {
		out.IDs[i] = int64(id)
		out.AttentionMask[i] = 1
		if i < len(enc.AttentionMask) {
			out.AttentionMask[i] = int64(enc.AttentionMask[i])
		}
		if i < len(enc.TypeIDs) {
			out.TypeIDs[i] = int64(enc.TypeIDs[i])
		}
		if i < len(enc.SpecialTokensMask) {
			out.Special[i] = enc.SpecialTokensMask[i] == 1
		}
	}
	return out, nil
}

func (t *hfTokenizer) Close() error { return t.tk.Close() }

type onnxModel struct {
	session *ort.DynamicAdvancedSession
	inputs  []string
	labels  int
	device  Device
}

func (b *onnxBackend) LoadModel(dir string, dev Device) (Model, error) {
	path := filepath.Join(dir, ModelFile)
	ins, outs, err := ort.GetInputOutputInfo(path)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", path, err)
	}
	var inputs []string
	hasIDs := false
	for _, in := range ins {
		switch in.Name {
		case inputIDs:
			hasIDs = true
		case attentionMask, tokenTypeIDs:
		default:
			return nil, fmt.Errorf("unsupported model input %q", in.Name)
		}
		inputs = append(inputs, in.Name)
	}
	if !hasIDs {
		return nil, fmt.Errorf("model has no %q input", inputIDs)
	}
	if len(outs) == 0 {
		return nil, fmt.Errorf("model has no outputs")
	}
	out := outs[0]
	for _, o := range outs {
		if o.Name == logitsOutput {
			out = o
			break
		}
	}
	if len(out.Dimensions) == 0 || out.Dimensions[len(out.Dimensions)-1] <= 0 {
		return nil, fmt.Errorf("output %q has no static label dimension: %v", out.Name, out.Dimensions)
	}
	labels := int(out.Dimensions[len(out.Dimensions)-1])

	session, selected, err := openOnDevice(dev, func(d Device) (*ort.DynamicAdvancedSession, Device, error) {
		return b.newSession(path, inputs, out.Name, d)
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &onnxModel{session: session, inputs: inputs, labels: labels, device: selected}, nil
}

// newSession opens path with fresh options for dev. The returned device is
// the one the options targeted, also on failure.
func (b *onnxBackend) newSession(path string, inputs []string, output string, dev Device) (*ort.DynamicAdvancedSession, Device, error) {
	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, dev, fmt.Errorf("session options: %w", err)
	}
	defer opts.Destroy()
	if b.threads > 0 {
		if err := opts.SetIntraOpNumThreads(b.threads); err != nil {
			return nil, dev, fmt.Errorf("set threads: %w", err)
		}
	}
	selected, err := attachDevice(opts, dev)
	if err != nil {
		return nil, dev, err
	}
	session, err := ort.NewDynamicAdvancedSession(path, inputs, []string{output}, opts)
	if err != nil {
		return nil, selected, err
	}
	return session, selected, nil
}

// attachDevice appends the CUDA provider unless dev is cpu. With DeviceAuto a
// failure to attach falls back to the default CPU provider.
func attachDevice(opts *ort.SessionOptions, dev Device) (Device, error) {
	if dev == DeviceCPU {
		return DeviceCPU, nil
	}
	cuda, err := ort.NewCUDAProviderOptions()
	if err == nil {
		defer cuda.Destroy()
		err = opts.AppendExecutionProviderCUDA(cuda)
	}
	if err != nil {
		if dev == DeviceCUDA {
			return "", fmt.Errorf("attach cuda provider: %w", err)
		}
		return DeviceCPU, nil
	}
	return DeviceCUDA, nil
}

func (m *onnxModel) Logits(ctx context.Context, enc Encoding) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if enc.Len() == 0 {
		return nil, fmt.Errorf("empty encoding")
	}
	shape := ort.NewShape(1, int64(enc.Len()))
	values := make([]ort.Value, 0, len(m.inputs))
	defer func() {
		for _, v := range values {
			_ = v.Destroy()
		}
	}()
	for _, name := range m.inputs {
		data := enc.IDs
		switch name {
		case attentionMask:
			data = enc.AttentionMask
		case tokenTypeIDs:
			data = enc.TypeIDs
		}
		t, err := ort.NewTensor(shape, data)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", name, err)
		}
		values = append(values, t)
	}
	outT, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(m.labels)))
	if err != nil {
		return nil, err
	}
	defer outT.Destroy()
	if err := m.session.Run(values, []ort.Value{outT}); err != nil {
		return nil, fmt.Errorf("session run error: %w", err)
	}
	logits := make([]float32, m.labels)
	copy(logits, outT.GetData())
	return logits, nil
}

func (m *onnxModel) NumLabels() int { return m.labels }

func (m *onnxModel) Device() Device { return m.device }

func (m *onnxModel) Close() error { return m.session.Destroy() }
