// file: pkg/informer/informer.go

package informer

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/fx147/kuberaw/pkg/raw-client/api"
	"github.com/fx147/kuberaw/pkg/raw-client/typed"
	"github.com/fx147/kuberaw/pkg/raw-client/watch"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/tools/cache"
	"k8s.io/klog/v2"
)

// ResourceEventHandler 是一组由业务方提供的回调函数。
// 我们直接复用 client-go 的定义。
type ResourceEventHandler = cache.ResourceEventHandler

// Informer 对一种资源做 list+watch，并把变更分发给事件处理器。
type Informer interface {
	// AddEventHandler 注册一个事件处理器。
	AddEventHandler(handler ResourceEventHandler)
	// Run 启动 Informer 的主循环，直到 stopCh 关闭。
	Run(stopCh <-chan struct{})
}

// informer 是 Informer 接口的具体实现。
type informer struct {
	api          *typed.Api[unstructured.Unstructured]
	resyncPeriod time.Duration

	// versionCache 记录每个对象 key 最近一次见到的 resourceVersion。
	versionCache sync.Map

	// lastSeenRV 是 watch 的断点，只被 watchLoop 读写。
	lastSeenRV string

	handlers    []ResourceEventHandler
	handlerLock sync.RWMutex
}

// NewInformer 为一种资源创建 Informer。
func NewInformer(resourceAPI *typed.Api[unstructured.Unstructured], resyncPeriod time.Duration) Informer {
	return &informer{
		api:          resourceAPI,
		resyncPeriod: resyncPeriod,
		handlers:     make([]ResourceEventHandler, 0),
	}
}

func (i *informer) AddEventHandler(handler ResourceEventHandler) {
	i.handlerLock.Lock()
	defer i.handlerLock.Unlock()
	i.handlers = append(i.handlers, handler)
}

// distribute 将一个事件分发给所有已注册的处理器。
func (i *informer) distribute(eventType watch.EventType, obj *unstructured.Unstructured) {
	i.handlerLock.RLock()
	defer i.handlerLock.RUnlock()

	for _, handler := range i.handlers {
		switch eventType {
		case watch.Added:
			handler.OnAdd(obj, false)
		case watch.Modified:
			// 我们没有缓存完整的旧对象，新对象同时作为 old 和 new 传递。
			handler.OnUpdate(obj, obj)
		case watch.Deleted:
			handler.OnDelete(obj)
		}
	}
}

func (i *informer) Run(stopCh <-chan struct{}) {
	klog.InfoS("Starting informer", "resource", i.api.Resource().Name())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-stopCh
		cancel()
	}()

	// 1. 启动 watch goroutine
	go i.watchLoop(ctx)

	// 2. 启动周期性 resync goroutine，作为漏掉事件时的安全网
	go wait.Until(func() { i.resync(ctx) }, i.resyncPeriod, stopCh)

	<-stopCh
	klog.InfoS("Shutting down informer", "resource", i.api.Resource().Name())
}

// watchLoop 维护到服务器的 watch 流，断开后从最近的
// resourceVersion 重新建立。
func (i *informer) watchLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		decoder, err := i.api.Watch(ctx, api.ListParams{}, i.lastSeenRV)
		if err != nil {
			klog.ErrorS(err, "Failed to open watch, retrying", "resource", i.api.Resource().Name())
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		i.consumeWatch(ctx, decoder)
		decoder.Close()
	}
}

// consumeWatch 消费一条 watch 流直到它结束或出错。
func (i *informer) consumeWatch(ctx context.Context, decoder *watch.Decoder) {
	for {
		if ctx.Err() != nil {
			return
		}

		event, err := decoder.Decode()
		if err == io.EOF {
			// Server closed the watch after its timeout; reconnect.
			return
		}
		if err != nil {
			klog.ErrorS(err, "Watch stream broken, reconnecting", "resource", i.api.Resource().Name())
			return
		}

		switch event.Type {
		case watch.Bookmark:
			obj := &unstructured.Unstructured{}
			if err := json.Unmarshal(event.Object, obj); err == nil {
				i.lastSeenRV = obj.GetResourceVersion()
			}
		case watch.Error:
			// Most commonly "resourceVersion too old": drop the
			// breakpoint and let the next connect start fresh.
			klog.InfoS("Watch returned an error event, restarting from scratch", "resource", i.api.Resource().Name())
			i.lastSeenRV = ""
			return
		default:
			i.processEvent(event)
		}
	}
}

// processEvent 处理单个实时事件。
func (i *informer) processEvent(event *watch.Event) {
	obj := &unstructured.Unstructured{}
	if err := json.Unmarshal(event.Object, obj); err != nil {
		klog.ErrorS(err, "Failed to decode watch object, dropping event", "type", event.Type)
		return
	}

	key, err := cache.MetaNamespaceKeyFunc(obj)
	if err != nil {
		klog.ErrorS(err, "Failed to derive key, dropping event")
		return
	}

	newRV := obj.GetResourceVersion()
	i.lastSeenRV = newRV

	if event.Type == watch.Deleted {
		if _, exists := i.versionCache.Load(key); exists {
			i.versionCache.Delete(key)
		}
		i.distribute(watch.Deleted, obj)
		return
	}

	// 对于 Add 和 Modify，如果版本没有变化则忽略。
	if oldRV, exists := i.versionCache.Load(key); exists && oldRV.(string) == newRV {
		return
	}

	i.versionCache.Store(key, newRV)
	i.distribute(event.Type, obj)
}

// resync 是我们的安全网：全量 list 一次，和 versionCache 对比，
// 补发漏掉的 Added/Modified/Deleted。
func (i *informer) resync(ctx context.Context) {
	klog.V(4).InfoS("Running informer resync", "resource", i.api.Resource().Name())

	list, err := i.api.List(ctx, api.ListParams{})
	if err != nil {
		klog.ErrorS(err, "Failed to list for resync", "resource", i.api.Resource().Name())
		return
	}

	newVersionMap := make(map[string]string)

	// 找出 Added 和 Modified。
	for idx := range list.Items {
		obj := &list.Items[idx]
		key, err := cache.MetaNamespaceKeyFunc(obj)
		if err != nil {
			continue
		}
		newRV := obj.GetResourceVersion()
		newVersionMap[key] = newRV

		oldRV, exists := i.versionCache.Load(key)
		if !exists {
			i.distribute(watch.Added, obj)
		} else if oldRV.(string) != newRV {
			i.distribute(watch.Modified, obj)
		}
	}

	// 找出 Deleted，并为它们构造 tombstone 对象。
	i.versionCache.Range(func(key, value interface{}) bool {
		if _, exists := newVersionMap[key.(string)]; !exists {
			namespace, name, _ := cache.SplitMetaNamespaceKey(key.(string))
			tombstone := &unstructured.Unstructured{}
			tombstone.SetAPIVersion(i.api.Resource().APIVersion())
			tombstone.SetKind(i.api.Resource().Kind())
			tombstone.SetNamespace(namespace)
			tombstone.SetName(name)
			tombstone.SetResourceVersion(value.(string))

			i.distribute(watch.Deleted, tombstone)
		}
		return true
	})

	// 用新的版本快照替换 versionCache。
	i.versionCache.Range(func(key, value interface{}) bool {
		if _, ok := newVersionMap[key.(string)]; !ok {
			i.versionCache.Delete(key)
		}
		return true
	})
	for key, rv := range newVersionMap {
		i.versionCache.Store(key, rv)
	}

	klog.V(4).InfoS("Informer resync complete", "resource", i.api.Resource().Name())
}
