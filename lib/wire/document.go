// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "github.com/golang/protobuf/proto"

// Document types that matter when walking search results. A search
// response nests clusters inside categories and apps inside clusters.
const (
	DocTypeApp     int32 = 1
	DocTypeCluster int32 = 45
)

// Image is a document or profile image reference.
type Image struct {
	ImageType *int32  `protobuf:"varint,1,opt,name=imageType" json:"imageType,omitempty"`
	ImageUrl  *string `protobuf:"bytes,5,opt,name=imageUrl" json:"imageUrl,omitempty"`
}

func (m *Image) Reset()         { *m = Image{} }
func (m *Image) String() string { return proto.CompactTextString(m) }
func (*Image) ProtoMessage()    {}

// Offer is one purchase offer on a document. Free apps carry a single
// offer of type 1 with zero micros.
type Offer struct {
	Micros               *int64  `protobuf:"varint,1,opt,name=micros" json:"micros,omitempty"`
	CurrencyCode         *string `protobuf:"bytes,2,opt,name=currencyCode" json:"currencyCode,omitempty"`
	FormattedAmount      *string `protobuf:"bytes,3,opt,name=formattedAmount" json:"formattedAmount,omitempty"`
	CheckoutFlowRequired *bool   `protobuf:"varint,5,opt,name=checkoutFlowRequired" json:"checkoutFlowRequired,omitempty"`
	OfferType            *int32  `protobuf:"varint,8,opt,name=offerType" json:"offerType,omitempty"`
}

func (m *Offer) Reset()         { *m = Offer{} }
func (m *Offer) String() string { return proto.CompactTextString(m) }
func (*Offer) ProtoMessage()    {}

type AggregateRating struct {
	Type         *int32   `protobuf:"varint,1,opt,name=type" json:"type,omitempty"`
	StarRating   *float32 `protobuf:"fixed32,2,opt,name=starRating" json:"starRating,omitempty"`
	RatingsCount *uint64  `protobuf:"varint,3,opt,name=ratingsCount" json:"ratingsCount,omitempty"`
}

func (m *AggregateRating) Reset()         { *m = AggregateRating{} }
func (m *AggregateRating) String() string { return proto.CompactTextString(m) }
func (*AggregateRating) ProtoMessage()    {}

// AppFileMetadata describes one installable file of an app version.
type AppFileMetadata struct {
	FileType    *int32 `protobuf:"varint,1,opt,name=fileType" json:"fileType,omitempty"`
	VersionCode *int32 `protobuf:"varint,2,opt,name=versionCode" json:"versionCode,omitempty"`
	Size        *int64 `protobuf:"varint,3,opt,name=size" json:"size,omitempty"`
}

func (m *AppFileMetadata) Reset()         { *m = AppFileMetadata{} }
func (m *AppFileMetadata) String() string { return proto.CompactTextString(m) }
func (*AppFileMetadata) ProtoMessage()    {}

type AppDetails struct {
	DeveloperName     *string            `protobuf:"bytes,1,opt,name=developerName" json:"developerName,omitempty"`
	VersionCode       *int32             `protobuf:"varint,3,opt,name=versionCode" json:"versionCode,omitempty"`
	VersionString     *string            `protobuf:"bytes,4,opt,name=versionString" json:"versionString,omitempty"`
	Title             *string            `protobuf:"bytes,5,opt,name=title" json:"title,omitempty"`
	AppCategory       []string           `protobuf:"bytes,7,rep,name=appCategory" json:"appCategory,omitempty"`
	ContentRating     *int32             `protobuf:"varint,8,opt,name=contentRating" json:"contentRating,omitempty"`
	InstallationSize  *int64             `protobuf:"varint,9,opt,name=installationSize" json:"installationSize,omitempty"`
	Permission        []string           `protobuf:"bytes,10,rep,name=permission" json:"permission,omitempty"`
	DeveloperEmail    *string            `protobuf:"bytes,11,opt,name=developerEmail" json:"developerEmail,omitempty"`
	DeveloperWebsite  *string            `protobuf:"bytes,12,opt,name=developerWebsite" json:"developerWebsite,omitempty"`
	NumDownloads      *string            `protobuf:"bytes,13,opt,name=numDownloads" json:"numDownloads,omitempty"`
	PackageName       *string            `protobuf:"bytes,14,opt,name=packageName" json:"packageName,omitempty"`
	RecentChangesHtml *string            `protobuf:"bytes,15,opt,name=recentChangesHtml" json:"recentChangesHtml,omitempty"`
	UploadDate        *string            `protobuf:"bytes,16,opt,name=uploadDate" json:"uploadDate,omitempty"`
	File              []*AppFileMetadata `protobuf:"bytes,17,rep,name=file" json:"file,omitempty"`
}

func (m *AppDetails) Reset()         { *m = AppDetails{} }
func (m *AppDetails) String() string { return proto.CompactTextString(m) }
func (*AppDetails) ProtoMessage()    {}

func (m *AppDetails) GetVersionCode() int32 {
	if m != nil && m.VersionCode != nil {
		return *m.VersionCode
	}
	return 0
}

type DocumentDetails struct {
	AppDetails *AppDetails `protobuf:"bytes,1,opt,name=appDetails" json:"appDetails,omitempty"`
}

func (m *DocumentDetails) Reset()         { *m = DocumentDetails{} }
func (m *DocumentDetails) String() string { return proto.CompactTextString(m) }
func (*DocumentDetails) ProtoMessage()    {}

func (m *DocumentDetails) GetAppDetails() *AppDetails {
	if m != nil {
		return m.AppDetails
	}
	return nil
}

// DocV2 is the storefront's universal document: an app, a cluster of
// apps, or a category of clusters, distinguished by DocType.
type DocV2 struct {
	Docid           *string          `protobuf:"bytes,1,opt,name=docid" json:"docid,omitempty"`
	BackendDocid    *string          `protobuf:"bytes,2,opt,name=backendDocid" json:"backendDocid,omitempty"`
	DocType         *int32           `protobuf:"varint,3,opt,name=docType" json:"docType,omitempty"`
	BackendId       *int32           `protobuf:"varint,4,opt,name=backendId" json:"backendId,omitempty"`
	Title           *string          `protobuf:"bytes,5,opt,name=title" json:"title,omitempty"`
	Creator         *string          `protobuf:"bytes,6,opt,name=creator" json:"creator,omitempty"`
	DescriptionHtml *string          `protobuf:"bytes,7,opt,name=descriptionHtml" json:"descriptionHtml,omitempty"`
	Offer           []*Offer         `protobuf:"bytes,8,rep,name=offer" json:"offer,omitempty"`
	Image           []*Image         `protobuf:"bytes,10,rep,name=image" json:"image,omitempty"`
	Child           []*DocV2         `protobuf:"bytes,11,rep,name=child" json:"child,omitempty"`
	Details         *DocumentDetails `protobuf:"bytes,13,opt,name=details" json:"details,omitempty"`
	AggregateRating *AggregateRating `protobuf:"bytes,14,opt,name=aggregateRating" json:"aggregateRating,omitempty"`
	DetailsUrl      *string          `protobuf:"bytes,16,opt,name=detailsUrl" json:"detailsUrl,omitempty"`
	ShareUrl        *string          `protobuf:"bytes,17,opt,name=shareUrl" json:"shareUrl,omitempty"`
	ReviewsUrl      *string          `protobuf:"bytes,18,opt,name=reviewsUrl" json:"reviewsUrl,omitempty"`
}

func (m *DocV2) Reset()         { *m = DocV2{} }
func (m *DocV2) String() string { return proto.CompactTextString(m) }
func (*DocV2) ProtoMessage()    {}

func (m *DocV2) GetDocid() string {
	if m != nil && m.Docid != nil {
		return *m.Docid
	}
	return ""
}

func (m *DocV2) GetDocType() int32 {
	if m != nil && m.DocType != nil {
		return *m.DocType
	}
	return 0
}

func (m *DocV2) GetChild() []*DocV2 {
	if m != nil {
		return m.Child
	}
	return nil
}

func (m *DocV2) GetDetails() *DocumentDetails {
	if m != nil {
		return m.Details
	}
	return nil
}

type ListResponse struct {
	Doc []*DocV2 `protobuf:"bytes,2,rep,name=doc" json:"doc,omitempty"`
}

func (m *ListResponse) Reset()         { *m = ListResponse{} }
func (m *ListResponse) String() string { return proto.CompactTextString(m) }
func (*ListResponse) ProtoMessage()    {}

func (m *ListResponse) GetDoc() []*DocV2 {
	if m != nil {
		return m.Doc
	}
	return nil
}

type DetailsResponse struct {
	AnalyticsCookie *string `protobuf:"bytes,2,opt,name=analyticsCookie" json:"analyticsCookie,omitempty"`
	DocV2           *DocV2  `protobuf:"bytes,4,opt,name=docV2" json:"docV2,omitempty"`
	FooterHtml      *string `protobuf:"bytes,5,opt,name=footerHtml" json:"footerHtml,omitempty"`
}

func (m *DetailsResponse) Reset()         { *m = DetailsResponse{} }
func (m *DetailsResponse) String() string { return proto.CompactTextString(m) }
func (*DetailsResponse) ProtoMessage()    {}

func (m *DetailsResponse) GetDocV2() *DocV2 {
	if m != nil {
		return m.DocV2
	}
	return nil
}

// Review is one user review of a document.
type Review struct {
	AuthorName      *string `protobuf:"bytes,1,opt,name=authorName" json:"authorName,omitempty"`
	Url             *string `protobuf:"bytes,2,opt,name=url" json:"url,omitempty"`
	DocumentVersion *string `protobuf:"bytes,4,opt,name=documentVersion" json:"documentVersion,omitempty"`
	TimestampMsec   *int64  `protobuf:"varint,5,opt,name=timestampMsec" json:"timestampMsec,omitempty"`
	StarRating      *int32  `protobuf:"varint,6,opt,name=starRating" json:"starRating,omitempty"`
	Title           *string `protobuf:"bytes,7,opt,name=title" json:"title,omitempty"`
	Comment         *string `protobuf:"bytes,8,opt,name=comment" json:"comment,omitempty"`
	CommentId       *string `protobuf:"bytes,9,opt,name=commentId" json:"commentId,omitempty"`
	DeviceName      *string `protobuf:"bytes,19,opt,name=deviceName" json:"deviceName,omitempty"`
}

func (m *Review) GetAuthorName() string {
	if m != nil && m.AuthorName != nil {
		return *m.AuthorName
	}
	return ""
}

func (m *Review) GetStarRating() int32 {
	if m != nil && m.StarRating != nil {
		return *m.StarRating
	}
	return 0
}

func (m *Review) GetTitle() string {
	if m != nil && m.Title != nil {
		return *m.Title
	}
	return ""
}

func (m *Review) GetComment() string {
	if m != nil && m.Comment != nil {
		return *m.Comment
	}
	return ""
}

func (m *Review) Reset()         { *m = Review{} }
func (m *Review) String() string { return proto.CompactTextString(m) }
func (*Review) ProtoMessage()    {}

type GetReviewsResponse struct {
	Review        []*Review `protobuf:"bytes,1,rep,name=review" json:"review,omitempty"`
	MatchingCount *int64    `protobuf:"varint,2,opt,name=matchingCount" json:"matchingCount,omitempty"`
}

func (m *GetReviewsResponse) Reset()         { *m = GetReviewsResponse{} }
func (m *GetReviewsResponse) String() string { return proto.CompactTextString(m) }
func (*GetReviewsResponse) ProtoMessage()    {}

func (m *GetReviewsResponse) GetReview() []*Review {
	if m != nil {
		return m.Review
	}
	return nil
}

type ReviewResponse struct {
	GetResponse *GetReviewsResponse `protobuf:"bytes,1,opt,name=getResponse" json:"getResponse,omitempty"`
	NextPageUrl *string             `protobuf:"bytes,2,opt,name=nextPageUrl" json:"nextPageUrl,omitempty"`
}

func (m *ReviewResponse) Reset()         { *m = ReviewResponse{} }
func (m *ReviewResponse) String() string { return proto.CompactTextString(m) }
func (*ReviewResponse) ProtoMessage()    {}

func (m *ReviewResponse) GetGetResponse() *GetReviewsResponse {
	if m != nil {
		return m.GetResponse
	}
	return nil
}

// BuyResponse is the result of /fdfe/purchase. For free apps the only
// field of interest is the download token that authorizes delivery.
type BuyResponse struct {
	DownloadToken *string `protobuf:"bytes,55,opt,name=downloadToken" json:"downloadToken,omitempty"`
}

func (m *BuyResponse) Reset()         { *m = BuyResponse{} }
func (m *BuyResponse) String() string { return proto.CompactTextString(m) }
func (*BuyResponse) ProtoMessage()    {}

func (m *BuyResponse) GetDownloadToken() string {
	if m != nil && m.DownloadToken != nil {
		return *m.DownloadToken
	}
	return ""
}

type HttpCookie struct {
	Name  *string `protobuf:"bytes,1,opt,name=name" json:"name,omitempty"`
	Value *string `protobuf:"bytes,2,opt,name=value" json:"value,omitempty"`
}

func (m *HttpCookie) Reset()         { *m = HttpCookie{} }
func (m *HttpCookie) String() string { return proto.CompactTextString(m) }
func (*HttpCookie) ProtoMessage()    {}

type SplitDeliveryData struct {
	Name                *string `protobuf:"bytes,1,opt,name=name" json:"name,omitempty"`
	DownloadSize        *int64  `protobuf:"varint,2,opt,name=downloadSize" json:"downloadSize,omitempty"`
	GzippedDownloadSize *int64  `protobuf:"varint,3,opt,name=gzippedDownloadSize" json:"gzippedDownloadSize,omitempty"`
	Signature           *string `protobuf:"bytes,4,opt,name=signature" json:"signature,omitempty"`
	DownloadUrl         *string `protobuf:"bytes,5,opt,name=downloadUrl" json:"downloadUrl,omitempty"`
	GzippedDownloadUrl  *string `protobuf:"bytes,6,opt,name=gzippedDownloadUrl" json:"gzippedDownloadUrl,omitempty"`
}

func (m *SplitDeliveryData) Reset()         { *m = SplitDeliveryData{} }
func (m *SplitDeliveryData) String() string { return proto.CompactTextString(m) }
func (*SplitDeliveryData) ProtoMessage()    {}

// AndroidAppDeliveryData is a delivery grant: where to fetch the APK
// and the cookies that authorize the fetch.
type AndroidAppDeliveryData struct {
	DownloadSize        *int64               `protobuf:"varint,1,opt,name=downloadSize" json:"downloadSize,omitempty"`
	Signature           *string              `protobuf:"bytes,2,opt,name=signature" json:"signature,omitempty"`
	DownloadUrl         *string              `protobuf:"bytes,3,opt,name=downloadUrl" json:"downloadUrl,omitempty"`
	DownloadAuthCookie  []*HttpCookie        `protobuf:"bytes,5,rep,name=downloadAuthCookie" json:"downloadAuthCookie,omitempty"`
	ForwardLocked       *bool                `protobuf:"varint,6,opt,name=forwardLocked" json:"forwardLocked,omitempty"`
	RefundTimeout       *int64               `protobuf:"varint,7,opt,name=refundTimeout" json:"refundTimeout,omitempty"`
	GzippedDownloadUrl  *string              `protobuf:"bytes,13,opt,name=gzippedDownloadUrl" json:"gzippedDownloadUrl,omitempty"`
	GzippedDownloadSize *int64               `protobuf:"varint,14,opt,name=gzippedDownloadSize" json:"gzippedDownloadSize,omitempty"`
	SplitDeliveryData   []*SplitDeliveryData `protobuf:"bytes,15,rep,name=splitDeliveryData" json:"splitDeliveryData,omitempty"`
	InstallLocation     *int32               `protobuf:"varint,16,opt,name=installLocation" json:"installLocation,omitempty"`
}

func (m *AndroidAppDeliveryData) Reset()         { *m = AndroidAppDeliveryData{} }
func (m *AndroidAppDeliveryData) String() string { return proto.CompactTextString(m) }
func (*AndroidAppDeliveryData) ProtoMessage()    {}

func (m *AndroidAppDeliveryData) GetDownloadUrl() string {
	if m != nil && m.DownloadUrl != nil {
		return *m.DownloadUrl
	}
	return ""
}

type DeliveryResponse struct {
	Status          *int32                  `protobuf:"varint,1,opt,name=status" json:"status,omitempty"`
	AppDeliveryData *AndroidAppDeliveryData `protobuf:"bytes,2,opt,name=appDeliveryData" json:"appDeliveryData,omitempty"`
}

func (m *DeliveryResponse) Reset()         { *m = DeliveryResponse{} }
func (m *DeliveryResponse) String() string { return proto.CompactTextString(m) }
func (*DeliveryResponse) ProtoMessage()    {}

func (m *DeliveryResponse) GetAppDeliveryData() *AndroidAppDeliveryData {
	if m != nil {
		return m.AppDeliveryData
	}
	return nil
}
