// Package naive_bayes provides scikit-learn compatible naive Bayes classifiers.
package naive_bayes

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/JimSow/Foundry/bayes"
	"github.com/JimSow/Foundry/core/model"
	"github.com/JimSow/Foundry/core/parallel"
	"github.com/JimSow/Foundry/dataset"
	"github.com/JimSow/Foundry/metrics"
	"github.com/JimSow/Foundry/pkg/errors"
	"github.com/JimSow/Foundry/stats"
)

const parallelThreshold = 1000

// GaussianNB はガウシアンナイーブベイズ分類器
//
// Each feature is modeled per class as an independent normal distribution.
// Fit trains from scratch with the batch learner; PartialFit accumulates
// running statistics, so the model can be trained from a stream of
// mini-batches. Both paths share the same accumulator formulas and produce
// identical means and variances for identical data.
type GaussianNB struct {
	state *model.StateManager

	// ハイパーパラメータ
	varSmoothing float64
	priorClasses []int

	// 学習済みパラメータ
	classes_ []int
	model_   *bayes.Categorizer[int]
	online_  *bayes.OnlineLearner[int]

	mu sync.RWMutex
}

// GaussianNBOption はGaussianNBのオプション設定関数
type GaussianNBOption func(*GaussianNB)

// WithVarSmoothing は分散に加算する平滑化項を設定（デフォルト: 1e-9）
func WithVarSmoothing(varSmoothing float64) GaussianNBOption {
	return func(nb *GaussianNB) {
		nb.varSmoothing = varSmoothing
	}
}

// WithClasses はクラスラベルの全体集合を事前に宣言
//
// Declaring the universe up front lets PartialFit and FitStream accept
// batches whose first labels do not cover every class.
func WithClasses(classes []int) GaussianNBOption {
	return func(nb *GaussianNB) {
		nb.priorClasses = sortedUnique(classes)
	}
}

// NewGaussianNB は新しいガウシアンナイーブベイズ分類器を作成
func NewGaussianNB(opts ...GaussianNBOption) *GaussianNB {
	nb := &GaussianNB{
		state:        model.NewStateManager(),
		varSmoothing: 1e-9,
	}
	for _, opt := range opts {
		opt(nb)
	}
	return nb
}

// Fit は訓練データからモデルを学習
//
// X is the (nSamples × nFeatures) feature matrix and y the (nSamples × 1)
// label column; labels are truncated to int. Fit discards any previous
// state, including incremental state built by PartialFit.
func (nb *GaussianNB) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "GaussianNB.Fit")

	nb.mu.Lock()
	defer nb.mu.Unlock()

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "GaussianNB.Fit")
	}
	if yRows != rows {
		return errors.NewDimensionError("GaussianNB.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("GaussianNB.Fit", 1, yCols, 1)
	}

	labels := make([]int, rows)
	for i := range labels {
		labels[i] = int(y.At(i, 0))
	}
	classes := nb.priorClasses
	if classes == nil {
		classes = sortedUnique(labels)
	} else {
		for _, label := range labels {
			if classIndex(classes, label) < 0 {
				return errors.NewValueError("GaussianNB.Fit",
					fmt.Sprintf("label %d is not in the declared classes", label))
			}
		}
	}

	examples := make([]dataset.Example[int], rows)
	for i := 0; i < rows; i++ {
		examples[i] = dataset.Example[int]{
			X:     mat.NewVecDense(cols, mat.Row(nil, i, X)),
			Label: labels[i],
		}
	}

	learner := bayes.NewLearner[int](stats.GaussianEstimator{VarSmoothing: nb.varSmoothing})
	m, err := learner.Learn(examples)
	if err != nil {
		return errors.Wrap(err, "GaussianNB.Fit")
	}

	nb.model_ = m
	nb.online_ = nil
	nb.classes_ = classes
	nb.state.SetDimensions(cols, rows)
	nb.state.SetFitted()
	return nil
}

// PartialFit はミニバッチからモデルを逐次学習
//
// The first call fixes the class universe: from classes, from WithClasses,
// or from the labels present in the batch, in that order. Later calls must
// pass nil or the same set, and every label must belong to the universe.
// Calling PartialFit after Fit starts a new incremental model; batch-fitted
// densities cannot be updated in place.
func (nb *GaussianNB) PartialFit(X, y mat.Matrix, classes []int) (err error) {
	defer errors.Recover(&err, "GaussianNB.PartialFit")

	nb.mu.Lock()
	defer nb.mu.Unlock()

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "GaussianNB.PartialFit")
	}
	if yRows != rows {
		return errors.NewDimensionError("GaussianNB.PartialFit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("GaussianNB.PartialFit", 1, yCols, 1)
	}

	labels := make([]int, rows)
	for i := range labels {
		labels[i] = int(y.At(i, 0))
	}

	if nb.online_ == nil {
		universe := classes
		if universe == nil {
			universe = nb.priorClasses
		}
		if universe == nil {
			universe = labels
		}
		nb.classes_ = sortedUnique(universe)
		nb.model_ = bayes.NewCategorizer[int]()
		nb.online_ = bayes.NewOnlineLearner[int](
			stats.IncrementalGaussianEstimator{VarSmoothing: nb.varSmoothing})
		nb.state.Reset()
		nb.state.SetDimensions(cols, 0)
	} else {
		if classes != nil && !sameClasses(classes, nb.classes_) {
			return errors.NewValueError("GaussianNB.PartialFit",
				"classes must match the universe fixed on the first call")
		}
		features, _ := nb.state.GetDimensions()
		if cols != features {
			return errors.NewDimensionError("GaussianNB.PartialFit", features, cols, 1)
		}
	}

	// Validate every label before touching the model so a bad batch does
	// not leave partial updates behind.
	for _, label := range labels {
		if classIndex(nb.classes_, label) < 0 {
			return errors.NewValueError("GaussianNB.PartialFit",
				fmt.Sprintf("label %d is not in the declared classes", label))
		}
	}

	for i := 0; i < rows; i++ {
		x := mat.NewVecDense(cols, mat.Row(nil, i, X))
		nb.online_.Update(nb.model_, x, labels[i])
	}
	nb.state.AddSamples(rows)
	nb.state.SetFitted()
	return nil
}

// Predict は入力データのクラスラベルを予測
//
// Returns an (nSamples × 1) matrix of float64 class labels. Ties break
// toward the lowest class label.
func (nb *GaussianNB) Predict(X mat.Matrix) (mat.Matrix, error) {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	scores, err := nb.logPosteriors(X, "Predict")
	if err != nil {
		return nil, err
	}
	rows, _ := scores.Dims()
	pred := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		row := scores.RawRowView(i)
		best := 0
		for j := 1; j < len(row); j++ {
			if row[j] > row[best] {
				best = j
			}
		}
		pred.Set(i, 0, float64(nb.classes_[best]))
	}
	return pred, nil
}

// PredictLogProba は各クラスの対数確率を予測
//
// The returned (nSamples × nClasses) matrix is normalized per row with
// log-sum-exp, so each row of exp sums to 1. Column order matches Classes().
func (nb *GaussianNB) PredictLogProba(X mat.Matrix) (mat.Matrix, error) {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	return nb.predictLogProba(X)
}

// PredictProba は各クラスの所属確率を予測
func (nb *GaussianNB) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	logProba, err := nb.predictLogProba(X)
	if err != nil {
		return nil, err
	}
	rows, k := logProba.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < k; j++ {
			logProba.Set(i, j, math.Exp(logProba.At(i, j)))
		}
	}
	return logProba, nil
}

// Score はテストデータに対する平均正解率を返す
func (nb *GaussianNB) Score(X, y mat.Matrix) (float64, error) {
	pred, err := nb.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, pred)
}

// Classes は学習済みのクラスラベルを昇順で返す
func (nb *GaussianNB) Classes() []int {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	out := make([]int, len(nb.classes_))
	copy(out, nb.classes_)
	return out
}

// NSamplesSeen は学習に使用したサンプル数の累計を返す
func (nb *GaussianNB) NSamplesSeen() int {
	_, samples := nb.state.GetDimensions()
	return samples
}

// IsFitted はモデルが学習済みかどうかを返す
func (nb *GaussianNB) IsFitted() bool {
	return nb.state.IsFitted()
}

// predictLogProba assumes the caller holds at least a read lock.
func (nb *GaussianNB) predictLogProba(X mat.Matrix) (*mat.Dense, error) {
	scores, err := nb.logPosteriors(X, "PredictLogProba")
	if err != nil {
		return nil, err
	}
	rows, _ := scores.Dims()
	for i := 0; i < rows; i++ {
		row := scores.RawRowView(i)
		norm := errors.LogSumExp(row)
		for j := range row {
			row[j] -= norm
		}
	}
	return scores, nil
}

// logPosteriors computes the (nSamples × nClasses) matrix of joint
// log-likelihoods log P(class) + log P(x | class), column order Classes().
// Classes that were declared but never observed carry no mass and score -Inf.
func (nb *GaussianNB) logPosteriors(X mat.Matrix, method string) (*mat.Dense, error) {
	if !nb.state.IsFitted() {
		return nil, errors.NewNotFittedError("GaussianNB", method)
	}
	rows, cols := X.Dims()
	features, _ := nb.state.GetDimensions()
	if cols != features {
		return nil, errors.NewDimensionError("GaussianNB."+method, features, cols, 1)
	}

	trained := make([]bool, len(nb.classes_))
	for j, class := range nb.classes_ {
		_, trained[j] = nb.model_.Conditionals(class)
	}

	scores := mat.NewDense(rows, len(nb.classes_), nil)
	errs := make([]error, rows)
	parallel.ParallelizeWithThreshold(rows, parallelThreshold, func(start, end int) {
		x := mat.NewVecDense(cols, nil)
		for i := start; i < end; i++ {
			for c := 0; c < cols; c++ {
				x.SetVec(c, X.At(i, c))
			}
			for j, class := range nb.classes_ {
				if !trained[j] {
					scores.Set(i, j, math.Inf(-1))
					continue
				}
				lp, err := nb.model_.LogPosterior(x, class)
				if err != nil {
					errs[i] = err
					return
				}
				scores.Set(i, j, lp)
			}
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return scores, nil
}

// FitStream はデータストリームからモデルを逐次学習
//
// Each batch goes through PartialFit. Declare the class universe with
// WithClasses when the first batch may not contain every label.
func (nb *GaussianNB) FitStream(ctx context.Context, dataChan <-chan *model.Batch) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batch, ok := <-dataChan:
			if !ok {
				return nil
			}
			if err := nb.PartialFit(batch.X, batch.Y, nil); err != nil {
				return err
			}
		}
	}
}

// PredictStream は入力ストリームに対してリアルタイム予測
func (nb *GaussianNB) PredictStream(ctx context.Context, inputChan <-chan mat.Matrix) <-chan mat.Matrix {
	outputChan := make(chan mat.Matrix)

	go func() {
		defer close(outputChan)

		for {
			select {
			case <-ctx.Done():
				return
			case X, ok := <-inputChan:
				if !ok {
					return
				}

				pred, err := nb.Predict(X)
				if err != nil {
					continue
				}

				select {
				case outputChan <- pred:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return outputChan
}

// FitPredictStream は学習と予測を同時に実行
//
// Each batch is predicted before the model trains on it, so every output
// is an out-of-sample prediction. The first batch has no model to score
// against and produces no output. The output channel closes early if a
// batch fails to train.
func (nb *GaussianNB) FitPredictStream(ctx context.Context, dataChan <-chan *model.Batch) <-chan mat.Matrix {
	outputChan := make(chan mat.Matrix)

	go func() {
		defer close(outputChan)

		for {
			select {
			case <-ctx.Done():
				return
			case batch, ok := <-dataChan:
				if !ok {
					return
				}

				if nb.IsFitted() {
					pred, err := nb.Predict(batch.X)
					if err == nil {
						select {
						case outputChan <- pred:
						case <-ctx.Done():
							return
						}
					}
				}

				if err := nb.PartialFit(batch.X, batch.Y, nil); err != nil {
					return
				}
			}
		}
	}()

	return outputChan
}

// GetParams はモデルのハイパーパラメータを返す（sklearn互換）
func (nb *GaussianNB) GetParams(deep bool) map[string]interface{} {
	params := map[string]interface{}{
		"var_smoothing": nb.varSmoothing,
	}
	if nb.priorClasses != nil {
		classes := make([]int, len(nb.priorClasses))
		copy(classes, nb.priorClasses)
		params["classes"] = classes
	}
	return params
}

// SetParams はモデルのハイパーパラメータを設定（sklearn互換）
func (nb *GaussianNB) SetParams(params map[string]interface{}) error {
	if v, ok := params["var_smoothing"].(float64); ok {
		nb.varSmoothing = v
	}
	if v, ok := params["classes"].([]int); ok {
		nb.priorClasses = sortedUnique(v)
	}
	return nil
}

// String はモデルの文字列表現を返す
func (nb *GaussianNB) String() string {
	if !nb.state.IsFitted() {
		return fmt.Sprintf("GaussianNB(var_smoothing=%g)", nb.varSmoothing)
	}
	features, samples := nb.state.GetDimensions()
	return fmt.Sprintf("GaussianNB(var_smoothing=%g, classes=%d, features=%d, samples=%d)",
		nb.varSmoothing, len(nb.classes_), features, samples)
}

// sortedUnique returns the distinct values of labels in ascending order.
func sortedUnique(labels []int) []int {
	out := make([]int, len(labels))
	copy(out, labels)
	sort.Ints(out)
	n := 0
	for i, v := range out {
		if i == 0 || v != out[n-1] {
			out[n] = v
			n++
		}
	}
	return out[:n]
}

// classIndex returns the position of label in classes, or -1 when absent.
func classIndex(classes []int, label int) int {
	for i, c := range classes {
		if c == label {
			return i
		}
	}
	return -1
}

// sameClasses reports whether the declared classes match the fixed universe.
func sameClasses(declared, universe []int) bool {
	d := sortedUnique(declared)
	if len(d) != len(universe) {
		return false
	}
	for i, v := range d {
		if v != universe[i] {
			return false
		}
	}
	return true
}

var (
	_ model.ClassifierWithPartialFit = (*GaussianNB)(nil)
	_ model.StreamingEstimator       = (*GaussianNB)(nil)
)
